package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var log *zap.Logger

func init() {
	var err error
	log, err = zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}
}

// StatusArgs is the parameter struct for "status".
type StatusArgs struct{}

func handleStatus(args StatusArgs) {
	color.New(color.FgGreen, color.Bold).Println("clirouter-demo: all systems operational")
}

// AddArgs is the parameter struct for "add {x:int} {y:int}".
type AddArgs struct {
	X int `cli:"x"`
	Y int `cli:"y"`
}

func handleAdd(args AddArgs) {
	fmt.Printf("%d + %d = %d\n", args.X, args.Y, args.X+args.Y)
}

// DeployArgs is the parameter struct for the "deploy" command.
type DeployArgs struct {
	App    string `cli:"app"`
	Tag    string `cli:"tag" default:"latest"`
	Env    string `cli:"e"`
	DryRun bool   `cli:"dry-run"`
}

func handleDeploy(args DeployArgs) {
	prefix := color.New(color.FgCyan, color.Bold)
	if args.DryRun {
		prefix.Print("[dry run] ")
	}
	log.Info("deploy requested",
		zap.String("app", args.App),
		zap.String("tag", args.Tag),
		zap.String("env", args.Env),
		zap.Bool("dry_run", args.DryRun),
	)
	fmt.Printf("deploying %s:%s to %s\n", args.App, args.Tag, args.Env)
}

// BuildArgs is the parameter struct for the "build" command.
type BuildArgs struct {
	Tags  []string `cli:"t"`
	Level string   `cli:"l"`
}

func handleBuild(args BuildArgs) {
	log.Info("build requested", zap.Strings("tags", args.Tags), zap.String("level", args.Level))
	fmt.Printf("building with tags [%s] at level %s\n", strings.Join(args.Tags, ", "), args.Level)
}

// DockerArgs is the parameter struct for "docker {*args}".
type DockerArgs struct {
	Args []string `cli:"args"`
}

func handleDocker(args DockerArgs) {
	fmt.Printf("docker %s\n", strings.Join(args.Args, " "))
}

// ExecArgs is the parameter struct for "exec -- {*cmd}".
type ExecArgs struct {
	Cmd []string `cli:"cmd"`
}

func handleExec(args ExecArgs) {
	fmt.Printf("exec %s\n", strings.Join(args.Cmd, " "))
}
