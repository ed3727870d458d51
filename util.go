package pspace

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}
