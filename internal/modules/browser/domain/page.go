package domain

// PageState is what the rendering engine last reported for a tab.
type PageState struct {
	URL          string
	Title        string
	Progress     int
	CanGoBack    bool
	CanGoForward bool
}

func (p PageState) Loading() bool { return p.Progress > 0 && p.Progress < 100 }
