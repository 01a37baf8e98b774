package encoding

func init() {
	initConventions()
}
