package ecs

type UpdateFrame struct {
	Number    uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(number uint64, dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		Number:    number,
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
