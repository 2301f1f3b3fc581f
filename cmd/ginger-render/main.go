// Command ginger-render parses and renders a single template file from
// the command line, grounded in pgavlin/yomlette's cmd/yparse: the same
// "_main(args) error, print colorized diagnostic on failure" shape, the
// same fatih/color + mattn/go-colorable pairing for terminal output.
package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	colorable "github.com/mattn/go-colorable"

	ginger "github.com/motching/ginger-go"
	"github.com/motching/ginger-go/resolver"
	"github.com/motching/ginger-go/value"
)

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

// parseVars turns a list of "name=value" command-line arguments into the
// lookup table a pure render uses. Every value is bound as a String;
// there is no CLI surface for richer shapes.
func parseVars(args []string) map[string]value.Value {
	vars := make(map[string]value.Value, len(args))
	for _, arg := range args {
		name, val, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		vars[name] = value.String(val)
	}
	return vars
}

func _main(args []string) error {
	if len(args) < 2 {
		return errors.New("ginger-render: usage: ginger-render template.html [name=value ...]")
	}
	filename := args[1]
	dir := path.Dir(filename)
	base := path.Base(filename)

	resolve := resolver.FS(osfs.New(dir), "")
	tmpl, perr := ginger.ParseFile(resolve, base)
	if perr != nil {
		return perr
	}

	lookup := ginger.MapLookup(parseVars(args[2:]))
	out, err := ginger.RenderPure(lookup, tmpl)
	if err != nil {
		return err
	}
	fmt.Print(out.String())
	return nil
}

func main() {
	writer := colorable.NewColorableStderr()
	if err := _main(os.Args); err != nil {
		fmt.Fprintf(writer, "%s%s%s\n", format(color.FgHiRed), err.Error(), format(color.Reset))
		os.Exit(1)
	}
}
