package consts

// Route pattern syntax.
const (
	RuneFwdSlash   = '/'
	RuneColon      = ':'
	RuneOpenBrace  = '{'
	RuneCloseBrace = '}'
	RuneOpenParen  = '('
	RuneCloseParen = ')'
	RunePipe       = '|'
	RuneQuestion   = '?'
)

// Regular expression fragments emitted by the pattern compiler.
const (
	// ReDefaultCapture is the capture body used by a placeholder without a constraint.
	ReDefaultCapture = `\w+`
	// ReEmptyGroup is what a bare placeholder looks like once its name has been removed.
	ReEmptyGroup = "()"
	// ReEscapedSlash is a path separator escaped for the regexp dialect.
	ReEscapedSlash = `\/`
	// RePrefix anchors a compiled route to the start of the path and its leading separator.
	RePrefix = `^\/`
	// ReSuffix tolerates one trailing separator and anchors to the end of the path.
	ReSuffix = `\/?$`
	// ReNonCapturingOpen wraps each route inside the combined pattern.
	ReNonCapturingOpen = "(?:"
	// ReAlternation joins routes inside the combined pattern.
	ReAlternation = "|"
)
