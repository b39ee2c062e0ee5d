package layout

// UpdateAction is the kind of structural change in a batch.
type UpdateAction int

const (
	UpdateInsert UpdateAction = iota
	UpdateDelete
	UpdateMove
	UpdateReload
)

func (a UpdateAction) String() string {
	switch a {
	case UpdateInsert:
		return "insert"
	case UpdateDelete:
		return "delete"
	case UpdateMove:
		return "move"
	case UpdateReload:
		return "reload"
	default:
		return "unknown"
	}
}

// UpdateItem is one change in a batch. Before is the index path prior to
// the batch (delete, move, reload); After is the path once it is applied
// (insert, move, reload).
type UpdateItem struct {
	Action UpdateAction
	Before *IndexPath
	After  *IndexPath
}

// Insert returns an UpdateItem inserting at p.
func Insert(p IndexPath) UpdateItem {
	return UpdateItem{Action: UpdateInsert, After: &p}
}

// Delete returns an UpdateItem deleting the item at p.
func Delete(p IndexPath) UpdateItem {
	return UpdateItem{Action: UpdateDelete, Before: &p}
}

// Move returns an UpdateItem moving an item from one path to another.
func Move(from, to IndexPath) UpdateItem {
	return UpdateItem{Action: UpdateMove, Before: &from, After: &to}
}

// Presentation is how an appearing item animates in.
type Presentation int

const (
	// PresentNone shows the item in place immediately.
	PresentNone Presentation = iota
	// PresentFade fades the item in.
	PresentFade
	// PresentFadeTranslate fades the item in while it slides up from below.
	PresentFadeTranslate
)

func (p Presentation) String() string {
	switch p {
	case PresentNone:
		return "none"
	case PresentFade:
		return "fade"
	case PresentFadeTranslate:
		return "fade+translate"
	default:
		return "unknown"
	}
}

// PrepareForUpdates records the batch being applied. It stays in effect
// until FinalizeUpdates.
func (e *Engine) PrepareForUpdates(updates []UpdateItem) {
	e.updates = updates
}

// FinalizeUpdates ends the batch and reports whether the host should
// scroll to the start of the layout.
func (e *Engine) FinalizeUpdates() (scrollToStart bool) {
	e.updates = nil
	scrollToStart = e.scrollToStart
	e.scrollToStart = false
	return scrollToStart
}

// Classify decides how the item appearing at p presents in the current
// batch. A batch of exactly one delete followed by one insert at the same
// path replaces an item in place. An item inserted at p slides in. Anything
// else that appears only fades.
func (e *Engine) Classify(p IndexPath) Presentation {
	u := e.updates
	if len(u) == 2 && u[0].Action == UpdateDelete && u[1].Action == UpdateInsert &&
		u[0].Before != nil && u[1].After != nil && *u[0].Before == *u[1].After {
		return PresentNone
	}
	for _, up := range u {
		if up.Action == UpdateInsert && up.After != nil && *up.After == p {
			return PresentFadeTranslate
		}
	}
	return PresentFade
}

// InitialAttributesForAppearing returns the attributes the item at p starts
// its appear animation from: a copy of its laid out attributes with alpha
// and translation set by Classify. A genuine insert at the first index path
// arms the scroll returned by FinalizeUpdates.
func (e *Engine) InitialAttributesForAppearing(p IndexPath) (*ItemAttributes, bool) {
	laid, ok := e.Attributes(p)
	if !ok {
		return nil, false
	}

	a := laid.Copy()
	switch e.Classify(p) {
	case PresentNone:
		a.Alpha = 1
	case PresentFade:
		a.Alpha = 0
	case PresentFadeTranslate:
		a.Alpha = 0
		a.TranslateY = a.Frame.Size.Height + e.cfg.AppearTranslation
		if p == At(0, 0) {
			e.scrollToStart = true
		}
	}
	return a, true
}
