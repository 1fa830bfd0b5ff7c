package presenter

import "errors"

// multiDisplay renders the same rows on several displays.
type multiDisplay []Display

// MultiDisplay returns a Display that renders on every given display, in
// order. All displays are attempted; their errors are joined.
func MultiDisplay(displays ...Display) Display {
	return multiDisplay(displays)
}

func (m multiDisplay) Render(lines []string) error {
	var errs []error

	for _, d := range m {
		if err := d.Render(lines); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
