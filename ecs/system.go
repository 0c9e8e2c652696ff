package ecs

// System is one step of a tick. Implementations are structs whose Query
// and Singleton fields are initialised by Scheduler.Register; any other
// fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage
}
