package dcf77

const (
	// FrameLength is the number of bit positions of a frame (second 0 .. 58).
	FrameLength = 59
	// lastPosition is the date parity bit, the last bit of a frame.
	lastPosition = FrameLength - 1
	// startOfTime is always 1.
	startOfTime = 20
)

// field is a BCD digit of the frame.
type field int

const (
	minuteOnes field = iota
	minuteTens
	hourOnes
	hourTens
	dayOnes
	dayTens
	monthOnes
	monthTens
	numFields
)

// fieldRange is the position of a BCD digit within the frame, LSB first.
type fieldRange struct {
	first int
	width int
}

// layout is indexed by field.
var layout = [numFields]fieldRange{
	minuteOnes: {first: 21, width: 4},
	minuteTens: {first: 25, width: 3},
	hourOnes:   {first: 29, width: 4},
	hourTens:   {first: 33, width: 2},
	dayOnes:    {first: 36, width: 4},
	dayTens:    {first: 40, width: 2},
	monthOnes:  {first: 45, width: 4},
	monthTens:  {first: 49, width: 1},
}

// parityGroup is a run of data bits [first, check) followed by the even parity bit at check.
// The date group includes weekday and year, which are counted but not decoded.
type parityGroup struct {
	first int
	check int
}

var groups = [...]parityGroup{
	{first: 21, check: 28},
	{first: 29, check: 35},
	{first: 36, check: 58},
}

// frame is the accumulator of the frame being received.
type frame struct {
	// bits is the raw bit buffer, for diagnostics only.
	bits [FrameLength]byte
	// received is the number of valid entries of bits.
	received int
	// fields are the BCD accumulators.
	fields [numFields]uint8
	// parity is the running parity of the current group.
	parity byte
}

// reset clears the accumulators and the bit buffer.
func (f *frame) reset() {
	f.clear()
	f.bits = [FrameLength]byte{}
	f.received = 0
}

// clear clears the accumulators but keeps the bit buffer.
func (f *frame) clear() {
	f.fields = [numFields]uint8{}
	f.parity = 0
}

// add folds bit at position pos into the accumulators.
// It returns false if pos is a parity position and bit doesn't match the running parity.
func (f *frame) add(pos int, bit byte) bool {
	f.bits[pos] = bit
	f.received = pos + 1

	for _, g := range groups {
		switch {
		case pos == g.first:
			f.parity = bit
		case pos > g.first && pos < g.check:
			f.parity ^= bit
		case pos == g.check:
			if bit != f.parity {
				return false
			}
			f.parity = 0
		}
	}

	for i, r := range layout {
		if pos >= r.first && pos < r.first+r.width {
			f.fields[i] |= bit << uint(pos-r.first)
			break
		}
	}

	return true
}

// decode converts the accumulators to the decoded time.
func (f *frame) decode() Time {
	digits := func(tens, ones field) int {
		return int(f.fields[tens])*10 + int(f.fields[ones])
	}

	return Time{
		Hours:   digits(hourTens, hourOnes),
		Minutes: digits(minuteTens, minuteOnes),
		Day:     digits(dayTens, dayOnes),
		Month:   digits(monthTens, monthOnes),
	}
}
