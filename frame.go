package treeval

// frame holds the cross-sibling state for one RuleMap application. Every
// value iterated at that level is a sibling; fixed-length and ordering
// checks are recorded here so they can compare later siblings against
// earlier ones.
type frame struct {
	// fixedLen is the sealed sibling length baseline, -1 while pending.
	fixedLen int
	// prev records the last value checked against ordering flags, keyed by
	// rule name. Keying by name makes the constraint span every value
	// matched by the same rule, notably each wildcard match in a sequence.
	prev map[string]any
}

func newFrame() *frame {
	return &frame{fixedLen: -1}
}

// sealLength seals the sibling length baseline on first use and reports
// whether n matches it afterwards.
func (f *frame) sealLength(n int) (baseline int, ok bool) {
	if f.fixedLen < 0 {
		f.fixedLen = n
		return n, true
	}
	return f.fixedLen, f.fixedLen == n
}

// lastValue returns the previously recorded value for the rule name.
func (f *frame) lastValue(name string) (any, bool) {
	v, ok := f.prev[name]
	return v, ok
}

// record stores v as the latest ordering reference for the rule name.
func (f *frame) record(name string, v any) {
	if f.prev == nil {
		f.prev = map[string]any{}
	}
	f.prev[name] = v
}

// frameStack is the explicit stack of sibling frames, one per active RuleMap
// application. Frames are owned by their enclosing call and dropped on
// return; only the top frame is ever consulted.
type frameStack []*frame

func (s *frameStack) push() *frame {
	f := newFrame()
	*s = append(*s, f)
	return f
}

func (s *frameStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s frameStack) top() *frame {
	return s[len(s)-1]
}
