package proc

// State is the scheduling state of a process, derived from the single
// state character in the per-PID stat file. The set is closed: anything
// the kernel reports that we do not recognise maps to Unknown.
type State uint8

const (
	Unknown State = iota
	Running
	Sleeping
	DiskSleep
	Stopped
	Zombie
	// Dead covers the kernel's X/x states and doubles as the state of a
	// sample for a process that vanished before it could be read.
	Dead
)

// StateFromChar maps a kernel state character onto a State.
func StateFromChar(c byte) State {
	switch c {
	case 'R':
		return Running
	case 'S':
		return Sleeping
	case 'D':
		return DiskSleep
	case 'T', 't':
		return Stopped
	case 'Z':
		return Zombie
	case 'X', 'x':
		return Dead
	default:
		return Unknown
	}
}

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Sleeping:
		return "Sleeping"
	case DiskSleep:
		return "DiskSleep"
	case Stopped:
		return "Stopped"
	case Zombie:
		return "Zombie"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// MarshalText lets a State render as its name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
