package theme_test

import (
	"fmt"

	"github.com/matzehuels/codeshot/pkg/theme"
)

func ExampleCatalog_Resolve() {
	cat := theme.NewCatalog()
	if err := cat.Load(theme.Builtin()); err != nil {
		panic(err)
	}

	fmt.Println(cat.Resolve("TOKYO NIGHT").Name)
	fmt.Println(cat.Resolve("unknown").Name)
	fmt.Println(cat.Resolve("dracula").Color(theme.ClassKeyword).Hex())
	// Output:
	// Tokyo Night
	// Dracula
	// #ff79c6
}
