package tape

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
)

// Parser parses gesture scripts into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire script and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		// Skip newlines
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if ok {
			commands = append(commands, cmd)
		}
		p.skipToNextLine()
	}

	return commands
}

// parseCommand parses a single command line
func (p *Parser) parseCommand() (Command, bool) {
	cmdType, ok := commandTokens[p.curTok.Type]
	if !ok {
		p.addError(fmt.Sprintf("unknown command %q", p.curTok.Literal))
		return Command{}, false
	}

	cmd := Command{
		Type:   cmdType,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}
	p.nextToken() // consume command

	switch cmdType {
	case CommandType_Viewport, CommandType_MinSize, CommandType_MaxSize,
		CommandType_SetPosition, CommandType_SetSize,
		CommandType_Press, CommandType_Drag, CommandType_Move:
		ok = p.parseNumbers(&cmd, 2)
	case CommandType_Release:
		ok = p.atLineEnd() || p.parseNumbers(&cmd, 2)
	case CommandType_Resize:
		ok = p.parseDirection(&cmd) && p.parseNumbers(&cmd, 2)
	case CommandType_Touch, CommandType_TouchMove:
		ok = p.parseTouches(&cmd, 1)
	case CommandType_TouchEnd:
		ok = p.parseTouches(&cmd, 0)
	case CommandType_Sleep:
		ok = p.parseSleep(&cmd)
	case CommandType_Expect:
		ok = p.parseExpect(&cmd)
	}
	if !ok {
		return cmd, false
	}

	if !p.atLineEnd() {
		p.addError(fmt.Sprintf("%s: unexpected %q", cmd.Type, p.curTok.Literal))
		return cmd, false
	}
	return cmd, true
}

// parseNumbers consumes exactly n integer arguments
func (p *Parser) parseNumbers(cmd *Command, n int) bool {
	for range n {
		if p.curTok.Type != TOKEN_NUMBER || strings.Contains(p.curTok.Literal, ".") {
			p.addError(fmt.Sprintf("%s expects %d integers, got %v", cmd.Type, n, p.describe()))
			return false
		}
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	return true
}

// parseTouches consumes X Y pairs until the end of the line
func (p *Parser) parseTouches(cmd *Command, minPairs int) bool {
	pairs := 0
	for p.curTok.Type == TOKEN_NUMBER {
		if !p.parseNumbers(cmd, 2) {
			return false
		}
		pairs++
	}
	if pairs < minPairs {
		p.addError(fmt.Sprintf("%s expects at least %d touch point", cmd.Type, minPairs))
		return false
	}
	return true
}

// parseDirection consumes a handle direction such as se or W
func (p *Parser) parseDirection(cmd *Command) bool {
	dir, err := geometry.ParseDirection(p.curTok.Literal)
	if p.curTok.Type != TOKEN_IDENTIFIER || err != nil || dir == geometry.DirNone {
		p.addError(fmt.Sprintf("%s expects a direction (n, s, e, w, ne, nw, se, sw), got %v", cmd.Type, p.describe()))
		return false
	}
	cmd.Args = append(cmd.Args, dir.String())
	p.nextToken()
	return true
}

// parseSleep parses Sleep <duration>
func (p *Parser) parseSleep(cmd *Command) bool {
	if p.curTok.Type != TOKEN_DURATION {
		p.addError(fmt.Sprintf("Sleep command expects a duration, got %v", p.describe()))
		return false
	}
	duration, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Delay = duration
	p.nextToken()
	return true
}

// parseExpect parses Expect <subject> <values>
func (p *Parser) parseExpect(cmd *Command) bool {
	subject := p.curTok.Literal
	if p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError(fmt.Sprintf("Expect needs a subject, got %v", p.describe()))
		return false
	}
	cmd.Args = []string{subject}
	p.nextToken()

	switch subject {
	case ExpectPosition, ExpectSize:
		return p.parseNumbers(cmd, 2)
	case ExpectListeners:
		return p.parseNumbers(cmd, 1)
	case ExpectMode:
		mode := strings.ToLower(p.curTok.Literal)
		switch mode {
		case geometry.Idle.String(), geometry.Dragging.String():
		case geometry.Resizing.String():
			if p.peekTok.Type == TOKEN_IDENTIFIER {
				cmd.Args = append(cmd.Args, mode)
				p.nextToken()
				return p.parseDirection(cmd)
			}
		default:
			p.addError(fmt.Sprintf("unknown mode %q", p.curTok.Literal))
			return false
		}
		cmd.Args = append(cmd.Args, mode)
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("unknown Expect subject %q", subject))
	return false
}

func (p *Parser) atLineEnd() bool {
	return p.curTok.Type == TOKEN_NEWLINE || p.curTok.Type == TOKEN_EOF
}

func (p *Parser) describe() string {
	if p.atLineEnd() {
		return "end of line"
	}
	return fmt.Sprintf("%q", p.curTok.Literal)
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a gesture script from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}
