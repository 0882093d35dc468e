package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type InputUtils struct {
	in  io.Reader
	out io.Writer
}

func NewInputUtils() *InputUtils {
	return &InputUtils{in: os.Stdin, out: os.Stdout}
}

// NewInputUtilsWith reads answers from in and writes prompts to out.
func NewInputUtilsWith(in io.Reader, out io.Writer) *InputUtils {
	return &InputUtils{in: in, out: out}
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.out, "🤔 %s (y/N): ", message)

	response, _ := bufio.NewReader(i.in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
