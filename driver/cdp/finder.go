package cdp

import (
	"os"
	"runtime"
)

var chromeCandidates = map[string][]string{
	"windows": {
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
	},
	"darwin": {
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	},
	"linux": {
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
	},
}

// FindChrome on the FS, returns the executable and a temp dir for profiles.
// CHROME_PATH wins over the well known install locations.
func FindChrome() (string, string) {
	tmp := profileRoot(runtime.GOOS)
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path, tmp
	}
	candidates := chromeCandidates[runtime.GOOS]
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, tmp
		}
	}
	if len(candidates) > 0 {
		return candidates[0], tmp
	}
	return "", tmp
}

func profileRoot(goos string) string {
	if goos == "windows" {
		return "C:\\Temp\\waitker\\"
	}
	return "/tmp/waitker/"
}

// FindKill based on OS
func FindKill(browser string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"taskkill", "/IM", browser + ".exe"}
	case "darwin", "linux":
		return []string{"killall", browser}
	}
	return []string{""}
}
