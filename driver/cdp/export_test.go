package cdp

var (
	FindQuery     = findQuery
	XPathLiteral  = xpathLiteral
	TranslateKeys = translateKeys
	RectFrom      = rectFrom
	ChromeFlags   = chromeFlags
	ProfileRoot   = profileRoot
	NewProfile    = newProfile
	DebuggerPort  = debuggerPort
)
