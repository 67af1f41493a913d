package physics

type Stick struct {
	A          uint32
	B          uint32
	RestLength float32
}
