package batch

// Stage identifies where a batch is inside the diagnose pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageReport
	StageRender
)

// Status qualifies a stage notification.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	// StatusCached means the run was answered from the report cache
	// without entering the pipeline.
	StatusCached
)

// Event is a progress notification for one batch file. Events with an
// empty Path describe the run as a whole.
type Event struct {
	Path   string
	Stage  Stage
	Status Status
}

// notify delivers events without ever blocking a worker; the consumer
// is a UI, dropped frames are fine.
func notify(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}
