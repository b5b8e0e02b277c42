package chrome

// NavDrawer is the mobile navigation drawer. The toggle button, the panel and
// the overlay share one open flag, so they can never disagree.
type NavDrawer struct {
	open bool
}

// Toggle flips the drawer and returns the new state. The overlay click is the
// same action.
func (d *NavDrawer) Toggle() bool {
	d.open = !d.open
	return d.open
}

// OnLinkSelect closes an open drawer. It reports whether anything changed.
func (d *NavDrawer) OnLinkSelect() bool {
	if !d.open {
		return false
	}
	d.Toggle()
	return true
}

func (d *NavDrawer) Open() bool { return d.open }

// ScrollLocked reports whether page scrolling is suppressed.
func (d *NavDrawer) ScrollLocked() bool { return d.open }
