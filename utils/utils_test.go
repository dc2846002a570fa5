package utils_test

import (
	"fmt"

	"true-clone/utils"
)

func ExampleUnpack2() {
	first, second := utils.Unpack2([]string{"TypeError", "bad", "extra"})
	fmt.Printf("%q %q\n", first, second)

	first, second = utils.Unpack2([]string{"Error"})
	fmt.Printf("%q %q\n", first, second)

	fmt.Println(utils.IsInRange(0, 8, 8), utils.IsInRange(0, 9, 8))
	// Output:
	// "TypeError" "bad"
	// "Error" ""
	// true false
}
