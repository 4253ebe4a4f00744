package text_test

import (
	"fmt"

	"github.com/decopy/decopy/pkg/text"
)

func ExampleFormatBytes() {
	fmt.Println(text.FormatBytes(0))
	fmt.Println(text.FormatBytes(1023))
	fmt.Println(text.FormatBytes(10 * 1024 * 1024))
	// Output:
	// 0b
	// 1023b
	// 10mb
}

func ExampleTruncate() {
	fmt.Println(text.Truncate("deployment-target-directory", 15))
	fmt.Println(text.Truncate("short", 15))
	// Output:
	// deployment-targ
	// short
}

func ExampleVisibleWidth() {
	fmt.Println(text.VisibleWidth("\x1b[35mDeployment Copy\x1b[0m"))
	// Output:
	// 15
}
