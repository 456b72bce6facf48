package waitk

// Keys understood by Node.SendKeys, as WebDriver code points
const (
	KeyBackspace = "\ue003"
	KeyTab       = "\ue004"
	KeyReturn    = "\ue006"
	KeyEnter     = "\ue007"
	KeyShift     = "\ue008"
	KeyControl   = "\ue009"
	KeyAlt       = "\ue00a"
	KeyEscape    = "\ue00c"
	KeySpace     = "\ue00d"
	KeyDelete    = "\ue017"
)

var keyNames = map[string]string{
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyReturn:    "Return",
	KeyEnter:     "Enter",
	KeyShift:     "Shift",
	KeyControl:   "Control",
	KeyAlt:       "Alt",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyDelete:    "Delete",
}

// KeyName of a special key, or the key itself
func KeyName(key string) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key
}
