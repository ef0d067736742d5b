package terminal

// In-memory stand-ins for the page elements the controller drives.

type toggle struct {
	active bool
}

func (t *toggle) SetActive(active bool) { t.active = active }

type label struct {
	text string
}

func (l *label) SetText(text string) { l.text = text }

type meter struct {
	fraction float64
}

func (m *meter) SetFraction(fraction float64) { m.fraction = fraction }
