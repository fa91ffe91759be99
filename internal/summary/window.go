package summary

// WeekWindow provides a sliding window of laid out weeks for TUI navigation.
// It maintains 3 consecutive weeks: previous, current, and next.
type WeekWindow struct {
	weeks [3]*WeekLayout // [0]=prev, [1]=current, [2]=next
}

// NewWeekWindow creates a window with three consecutive weeks.
func NewWeekWindow(prev, current, next *WeekLayout) *WeekWindow {
	return &WeekWindow{
		weeks: [3]*WeekLayout{prev, current, next},
	}
}

// Current returns the focused (center) week.
func (w *WeekWindow) Current() *WeekLayout {
	return w.weeks[1]
}

// Previous returns the week before current.
func (w *WeekWindow) Previous() *WeekLayout {
	return w.weeks[0]
}

// Next returns the week after current.
func (w *WeekWindow) Next() *WeekLayout {
	return w.weeks[2]
}

// ShiftForward moves the window forward by one week.
// newNext may be nil while it is still loading.
func (w *WeekWindow) ShiftForward(newNext *WeekLayout) {
	w.weeks[0] = w.weeks[1]
	w.weeks[1] = w.weeks[2]
	w.weeks[2] = newNext
}

// ShiftBackward moves the window backward by one week.
func (w *WeekWindow) ShiftBackward(newPrev *WeekLayout) {
	w.weeks[2] = w.weeks[1]
	w.weeks[1] = w.weeks[0]
	w.weeks[0] = newPrev
}

// SetCurrent replaces the current week, e.g. after a task mutation.
func (w *WeekWindow) SetCurrent(week *WeekLayout) {
	w.weeks[1] = week
}

// SetNext replaces the next week after it's been loaded.
func (w *WeekWindow) SetNext(week *WeekLayout) {
	w.weeks[2] = week
}

// SetPrevious replaces the previous week after it's been loaded.
func (w *WeekWindow) SetPrevious(week *WeekLayout) {
	w.weeks[0] = week
}

// HasNext returns true if the next week is loaded.
func (w *WeekWindow) HasNext() bool {
	return w.weeks[2] != nil
}

// HasPrevious returns true if the previous week is loaded.
func (w *WeekWindow) HasPrevious() bool {
	return w.weeks[0] != nil
}

// Invalidate drops the neighbouring weeks so they are reloaded.
func (w *WeekWindow) Invalidate() {
	w.weeks[0] = nil
	w.weeks[2] = nil
}
