package tape

// TokenType represents the type of a token in a gesture script
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Commands - Setup
	TOKEN_VIEWPORT TokenType = "Viewport"
	TOKEN_MIN_SIZE TokenType = "MinSize"
	TOKEN_MAX_SIZE TokenType = "MaxSize"

	// Commands - Mouse
	TOKEN_PRESS   TokenType = "Press"
	TOKEN_DRAG    TokenType = "Drag"
	TOKEN_RESIZE  TokenType = "Resize"
	TOKEN_MOVE    TokenType = "Move"
	TOKEN_RELEASE TokenType = "Release"

	// Commands - Touch
	TOKEN_TOUCH        TokenType = "Touch"
	TOKEN_TOUCH_MOVE   TokenType = "TouchMove"
	TOKEN_TOUCH_END    TokenType = "TouchEnd"
	TOKEN_TOUCH_CANCEL TokenType = "TouchCancel"

	// Commands - Window
	TOKEN_SET_POSITION TokenType = "SetPosition"
	TOKEN_SET_SIZE     TokenType = "SetSize"
	TOKEN_MAXIMIZE     TokenType = "Maximize"
	TOKEN_MINIMIZE     TokenType = "Minimize"
	TOKEN_RESTORE      TokenType = "Restore"
	TOKEN_CLOSE        TokenType = "Close"

	// Commands - Synchronization
	TOKEN_SLEEP  TokenType = "Sleep"
	TOKEN_EXPECT TokenType = "Expect"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type starts a command
func (tt TokenType) IsCommand() bool {
	_, ok := commandTokens[tt]
	return ok
}

// IsPointer returns true if the token is a pointer command
func (tt TokenType) IsPointer() bool {
	switch tt {
	case TOKEN_PRESS, TOKEN_DRAG, TOKEN_RESIZE, TOKEN_MOVE, TOKEN_RELEASE,
		TOKEN_TOUCH, TOKEN_TOUCH_MOVE, TOKEN_TOUCH_END, TOKEN_TOUCH_CANCEL:
		return true
	}
	return false
}

// commandTokens maps command tokens to the commands they start
var commandTokens = map[TokenType]CommandType{
	TOKEN_VIEWPORT:     CommandType_Viewport,
	TOKEN_MIN_SIZE:     CommandType_MinSize,
	TOKEN_MAX_SIZE:     CommandType_MaxSize,
	TOKEN_PRESS:        CommandType_Press,
	TOKEN_DRAG:         CommandType_Drag,
	TOKEN_RESIZE:       CommandType_Resize,
	TOKEN_MOVE:         CommandType_Move,
	TOKEN_RELEASE:      CommandType_Release,
	TOKEN_TOUCH:        CommandType_Touch,
	TOKEN_TOUCH_MOVE:   CommandType_TouchMove,
	TOKEN_TOUCH_END:    CommandType_TouchEnd,
	TOKEN_TOUCH_CANCEL: CommandType_TouchCancel,
	TOKEN_SET_POSITION: CommandType_SetPosition,
	TOKEN_SET_SIZE:     CommandType_SetSize,
	TOKEN_MAXIMIZE:     CommandType_Maximize,
	TOKEN_MINIMIZE:     CommandType_Minimize,
	TOKEN_RESTORE:      CommandType_Restore,
	TOKEN_CLOSE:        CommandType_Close,
	TOKEN_SLEEP:        CommandType_Sleep,
	TOKEN_EXPECT:       CommandType_Expect,
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	"Viewport": TOKEN_VIEWPORT,
	"MinSize":  TOKEN_MIN_SIZE,
	"MaxSize":  TOKEN_MAX_SIZE,

	"Press":   TOKEN_PRESS,
	"Drag":    TOKEN_DRAG,
	"Resize":  TOKEN_RESIZE,
	"Move":    TOKEN_MOVE,
	"Release": TOKEN_RELEASE,

	"Touch":       TOKEN_TOUCH,
	"TouchMove":   TOKEN_TOUCH_MOVE,
	"TouchEnd":    TOKEN_TOUCH_END,
	"TouchCancel": TOKEN_TOUCH_CANCEL,

	"SetPosition": TOKEN_SET_POSITION,
	"SetSize":     TOKEN_SET_SIZE,
	"Maximize":    TOKEN_MAXIMIZE,
	"Minimize":    TOKEN_MINIMIZE,
	"Restore":     TOKEN_RESTORE,
	"Close":       TOKEN_CLOSE,

	"Sleep":  TOKEN_SLEEP,
	"Expect": TOKEN_EXPECT,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
