package vec_test

import (
	"fmt"

	"github.com/vecstor/vec"
)

func ExampleVector() {
	v := vec.New[int]()
	defer v.Release()

	for i := 1; i <= 3; i++ {
		if _, err := v.Append(i * 10); err != nil {
			panic(err)
		}
	}
	if _, err := v.Insert(1, 15); err != nil {
		panic(err)
	}
	if _, err := v.Erase(0); err != nil {
		panic(err)
	}

	fmt.Println(v.Values(), v.Len(), v.Cap())
	// Output: [15 20 30] 3 4
}

func ExampleVector_Resize() {
	v, err := vec.NewWithLen[string](2)
	if err != nil {
		panic(err)
	}
	defer v.Release()

	v.Set(0, "a")
	v.Set(1, "b")
	if err := v.Resize(4); err != nil {
		panic(err)
	}

	fmt.Printf("%q\n", v.Values())
	// Output: ["a" "b" "" ""]
}
