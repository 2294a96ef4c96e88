// Package parser builds a route.CompiledRoute from pattern DSL text,
// implementing the pattern grammar.
package parser

import (
	"fmt"
	"strings"

	"github.com/clirouter/clirouter/lexer"
	"github.com/clirouter/clirouter/route"
)

// Parser transforms one pattern's token stream into a route.CompiledRoute.
type Parser struct {
	tokens  []lexer.Token
	current int
	source  []rune
	pattern string
}

// Parse parses pattern text into a CompiledRoute. A non-empty
// ParseErrorList means the route is invalid and must not be registered;
// the returned route may still be partially built for diagnostics.
func Parse(pattern string) (*route.CompiledRoute, ParseErrorList) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ParseErrorList{{
			Kind:    EmptyPattern,
			Pattern: pattern,
			Message: "pattern must not be empty",
		}}
	}

	p := &Parser{
		tokens:  lexer.ScanTokens(pattern),
		source:  []rune(pattern),
		pattern: pattern,
	}
	return p.parsePattern()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EndOfInput
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) sliceSource(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(p.source) {
		end = len(p.source)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(string(p.source[start:end]))
}

func (p *Parser) parsePattern() (*route.CompiledRoute, ParseErrorList) {
	var positional []route.PositionalSegment
	var options []route.OptionMatcher
	var errs ParseErrorList
	seenEndOfOptions := false
	optionForms := map[string]bool{}

	for !p.isAtEnd() && !p.check(lexer.Pipe) {
		tok := p.peek()
		switch tok.Type {
		case lexer.Identifier:
			p.advance()
			positional = append(positional, route.LiteralMatcher{Text: tok.Lexeme})

		case lexer.LeftBrace:
			p.advance()
			param, perr := p.parseParameter()
			if perr != nil {
				errs = append(errs, *perr)
				continue
			}
			positional = append(positional, param)

		case lexer.EndOfOptions:
			p.advance()
			if seenEndOfOptions {
				errs = append(errs, ParseError{
					Kind:     MultipleEndOfOptions,
					Pattern:  p.pattern,
					Position: tok.Position,
					Message:  "`--` end-of-options marker may appear at most once",
				})
			}
			seenEndOfOptions = true
			positional = append(positional, route.EndOfOptionsMatcher{})

		case lexer.DoubleDash, lexer.SingleDash:
			opt, operr := p.parseOption()
			if operr != nil {
				errs = append(errs, *operr)
				continue
			}
			for _, form := range opt.Forms() {
				if optionForms[form] {
					errs = append(errs, ParseError{
						Kind:     DuplicateOption,
						Pattern:  p.pattern,
						Position: tok.Position,
						Message:  fmt.Sprintf("duplicate option form %q", form),
					})
				}
				optionForms[form] = true
			}
			options = append(options, opt)

		case lexer.Invalid:
			p.advance()
			errs = append(errs, ParseError{
				Kind:     InvalidToken,
				Pattern:  p.pattern,
				Position: tok.Position,
				Message:  fmt.Sprintf("malformed token %q", tok.Lexeme),
			})

		default:
			p.advance()
			errs = append(errs, ParseError{
				Kind:     UnexpectedToken,
				Pattern:  p.pattern,
				Position: tok.Position,
				Message:  fmt.Sprintf("unexpected token %q", tok.Lexeme),
			})
		}
	}

	description := p.parseTrailingDescription()

	hasCatchAll, catchAllErr := validateCatchAllPlacement(positional, p.pattern)
	if catchAllErr != nil {
		errs = append(errs, *catchAllErr)
	}

	cr := &route.CompiledRoute{
		Pattern:         p.pattern,
		Positional:      positional,
		Options:         options,
		HasCatchAll:     hasCatchAll,
		HasEndOfOptions: seenEndOfOptions,
		Description:     description,
	}
	return cr, errs
}

// parseTrailingDescription consumes a top-level `| Description`, which
// runs to the end of the pattern.
func (p *Parser) parseTrailingDescription() string {
	if !p.check(lexer.Pipe) {
		return ""
	}
	p.advance()
	if p.isAtEnd() {
		return ""
	}
	start := p.peek().Position.Offset
	for !p.isAtEnd() {
		p.advance()
	}
	end := p.previous().End()
	return p.sliceSource(start, end)
}

// parseParameter parses the body of a `{...}` parameter, having already
// consumed the opening brace.
func (p *Parser) parseParameter() (route.ParameterMatcher, *ParseError) {
	catchAll := false
	if p.check(lexer.Asterisk) {
		p.advance()
		catchAll = true
	}

	if !p.check(lexer.Identifier) {
		tok := p.peek()
		p.recoverToRightBrace()
		return route.ParameterMatcher{}, &ParseError{
			Kind:     UnexpectedToken,
			Pattern:  p.pattern,
			Position: tok.Position,
			Message:  "expected a parameter name",
		}
	}
	nameTok := p.advance()

	optional := false
	constraint := ""
	if !catchAll {
		if p.check(lexer.Question) {
			p.advance()
			optional = true
		}
		if p.check(lexer.Colon) {
			p.advance()
			if !p.check(lexer.Identifier) {
				tok := p.peek()
				p.recoverToRightBrace()
				return route.ParameterMatcher{}, &ParseError{
					Kind:     UnexpectedToken,
					Pattern:  p.pattern,
					Position: tok.Position,
					Message:  "expected a constraint name after ':'",
				}
			}
			constraint = p.advance().Lexeme
		}
		if !optional && p.check(lexer.Question) {
			p.advance()
			optional = true
		}
	}

	description := ""
	if p.check(lexer.Pipe) {
		p.advance()
		start := p.peek().Position.Offset
		for !p.check(lexer.RightBrace) && !p.isAtEnd() {
			p.advance()
		}
		end := p.previous().End()
		if p.current > 0 {
			description = p.sliceSource(start, end)
		}
	}

	if !p.check(lexer.RightBrace) {
		tok := p.peek()
		p.recoverToRightBrace()
		return route.ParameterMatcher{}, &ParseError{
			Kind:     UnterminatedBrace,
			Pattern:  p.pattern,
			Position: tok.Position,
			Message:  "unterminated '{' in parameter",
		}
	}
	p.advance() // consume '}'

	return route.ParameterMatcher{
		Name:        nameTok.Lexeme,
		Optional:    optional,
		CatchAll:    catchAll,
		Constraint:  constraint,
		Description: description,
	}, nil
}

// parseOption parses one `('--'|'-') Identifier [, alt] [?] [{value}] [*]`
// option declaration. The option's own trailing
// description, if any, is the pattern's top-level description and is
// handled by the caller, not here.
func (p *Parser) parseOption() (route.OptionMatcher, *ParseError) {
	primary, perr := p.parseOptionForm()
	if perr != nil {
		return route.OptionMatcher{}, perr
	}

	alternate := ""
	if p.check(lexer.Comma) {
		p.advance()
		alt, aerr := p.parseOptionForm()
		if aerr != nil {
			return route.OptionMatcher{}, aerr
		}
		alternate = alt
	}

	isOptional := false
	if p.check(lexer.Question) {
		p.advance()
		isOptional = true
	}

	expectsValue := false
	paramName := ""
	paramOptional := false
	constraint := ""
	if p.check(lexer.LeftBrace) {
		p.advance()
		expectsValue = true
		if !p.check(lexer.Identifier) {
			tok := p.peek()
			p.recoverToRightBrace()
			return route.OptionMatcher{}, &ParseError{
				Kind:     UnexpectedToken,
				Pattern:  p.pattern,
				Position: tok.Position,
				Message:  "expected an option value name",
			}
		}
		paramName = p.advance().Lexeme
		if p.check(lexer.Question) {
			p.advance()
			paramOptional = true
		}
		if p.check(lexer.Colon) {
			p.advance()
			if !p.check(lexer.Identifier) {
				tok := p.peek()
				p.recoverToRightBrace()
				return route.OptionMatcher{}, &ParseError{
					Kind:     UnexpectedToken,
					Pattern:  p.pattern,
					Position: tok.Position,
					Message:  "expected a constraint name after ':'",
				}
			}
			constraint = p.advance().Lexeme
		}
		if !paramOptional && p.check(lexer.Question) {
			p.advance()
			paramOptional = true
		}
		if !p.check(lexer.RightBrace) {
			tok := p.peek()
			p.recoverToRightBrace()
			return route.OptionMatcher{}, &ParseError{
				Kind:     UnterminatedBrace,
				Pattern:  p.pattern,
				Position: tok.Position,
				Message:  "unterminated '{' in option value",
			}
		}
		p.advance() // consume '}'
	}

	isRepeated := false
	if p.check(lexer.Asterisk) {
		p.advance()
		isRepeated = true
	}

	return route.OptionMatcher{
		Primary:             primary,
		Alternate:           alternate,
		ExpectsValue:        expectsValue,
		ParameterName:       paramName,
		ParameterIsOptional: paramOptional,
		IsOptional:          isOptional,
		IsRepeated:          isRepeated,
		Constraint:          constraint,
	}, nil
}

// parseOptionForm parses a single `--name` or `-x` option form.
func (p *Parser) parseOptionForm() (string, *ParseError) {
	if !p.check(lexer.DoubleDash) && !p.check(lexer.SingleDash) {
		tok := p.peek()
		return "", &ParseError{
			Kind:     UnexpectedToken,
			Pattern:  p.pattern,
			Position: tok.Position,
			Message:  "expected '--name' or '-x'",
		}
	}
	prefix := p.advance().Lexeme
	if !p.check(lexer.Identifier) {
		tok := p.peek()
		return "", &ParseError{
			Kind:     UnexpectedToken,
			Pattern:  p.pattern,
			Position: tok.Position,
			Message:  "expected an option name",
		}
	}
	name := p.advance().Lexeme
	return prefix + name, nil
}

// recoverToRightBrace consumes tokens up to and including the next
// RightBrace (or end of input), so a malformed `{...}` doesn't cascade
// further spurious errors.
func (p *Parser) recoverToRightBrace() {
	for !p.isAtEnd() && !p.check(lexer.RightBrace) {
		p.advance()
	}
	if p.check(lexer.RightBrace) {
		p.advance()
	}
}

// validateCatchAllPlacement enforces that a catch-all parameter, if any,
// is the sole one and is the last positional segment.
func validateCatchAllPlacement(positional []route.PositionalSegment, pattern string) (bool, *ParseError) {
	count := 0
	lastIsCatchAll := false
	for i, seg := range positional {
		if pm, ok := seg.(route.ParameterMatcher); ok && pm.CatchAll {
			count++
			lastIsCatchAll = i == len(positional)-1
		}
	}
	if count == 0 {
		return false, nil
	}
	if count > 1 {
		return true, &ParseError{
			Kind:    CatchAllNotLast,
			Pattern: pattern,
			Message: "at most one catch-all parameter is allowed",
		}
	}
	if !lastIsCatchAll {
		return true, &ParseError{
			Kind:    CatchAllNotLast,
			Pattern: pattern,
			Message: "a catch-all parameter must be the last positional segment",
		}
	}
	return true, nil
}
