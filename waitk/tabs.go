package waitk

import "github.com/pkg/errors"

// TabHandle at index among the driver's window handles
func TabHandle(d Driver, index int) (string, error) {
	handles, err := d.WindowHandles()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(handles) {
		return "", &IndexError{Index: index, Length: len(handles)}
	}
	return handles[index], nil
}

// NextTabHandle after the current one, wrapping to the first.
func NextTabHandle(d Driver) (string, error) {
	return siblingTab(d, 1)
}

// PreviousTabHandle before the current one, wrapping to the last.
func PreviousTabHandle(d Driver) (string, error) {
	return siblingTab(d, -1)
}

func siblingTab(d Driver, offset int) (string, error) {
	handles, err := d.WindowHandles()
	if err != nil {
		return "", err
	}
	current, err := d.CurrentWindowHandle()
	if err != nil {
		return "", err
	}
	for i, h := range handles {
		if h == current {
			n := len(handles)
			return handles[((i+offset)%n+n)%n], nil
		}
	}
	return "", errors.Errorf("current tab %s is not among %v", current, handles)
}
