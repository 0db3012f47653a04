package overlay

// ReportedSurface is a ScrollSurface for a page rendered elsewhere: the
// client reports its offset with each request and reads back the lock state
// and the offset to restore.
type ReportedSurface struct {
	offset    float64
	locked    bool
	restoreTo *float64
}

func NewReportedSurface() *ReportedSurface {
	return &ReportedSurface{}
}

// Report records the offset the client currently shows. Negative offsets are
// treated as 0.
func (s *ReportedSurface) Report(offset float64) {
	s.offset = max(offset, 0)
}

func (s *ReportedSurface) Offset() float64 {
	return s.offset
}

func (s *ReportedSurface) Lock() {
	s.locked = true
	s.restoreTo = nil
}

func (s *ReportedSurface) Unlock() {
	s.locked = false
}

func (s *ReportedSurface) ScrollTo(offset float64) {
	s.offset = offset
	s.restoreTo = &offset
}

func (s *ReportedSurface) Locked() bool {
	return s.locked
}

// TakeRestore returns the pending restore offset once.
func (s *ReportedSurface) TakeRestore() (float64, bool) {
	if s.restoreTo == nil {
		return 0, false
	}
	v := *s.restoreTo
	s.restoreTo = nil
	return v, true
}
