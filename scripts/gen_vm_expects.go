package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	timeout = flag.Duration("timeout", 5*time.Second, "time limit for generating and formatting")
	fmtCmd  = flag.String("fmt", "goimports", "formatter to pipe generated code through")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		args = args[1:]
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, *fmtCmd)
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// builderMethod matches vmTestCase builder methods that take arguments; each
// one gets a standalone wrapper usable as a vmTestCase transform.
var builderMethod = regexp.MustCompile(`func \(vmt vmTestCase\) (expect|with)(.+?)\((.+?)\) vmTestCase`)

type wrapper struct {
	Base, What string
	Params     string
	Args       []string
}

var wrapperTemplate = template.Must(template.New("wrappers").Parse(`package main

// Code generated by scripts/gen_vm_expects.go from {{ .Source }}; DO NOT EDIT.
{{ if .Generate }}
//go:generate go run scripts/gen_vm_expects.go -- {{ .Generate }}
{{ end }}
{{- range .Wrappers }}
func {{ .Base }}VM{{ .What }}({{ .Params }}) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.{{ .Base }}{{ .What }}({{ range $i, $arg := .Args }}{{ if $i }}, {{ end }}{{ $arg }}{{ end }})
	}
}
{{ end }}`))

func scanWrappers(ctx context.Context, r io.Reader) (wrappers []wrapper, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		match := builderMethod.FindSubmatch(sc.Bytes())
		if len(match) == 0 {
			continue
		}
		w := wrapper{
			Base:   string(match[1]),
			What:   string(match[2]),
			Params: string(match[3]),
		}
		for _, part := range bytes.Split(match[3], []byte(",")) {
			fields := bytes.Fields(part)
			if len(fields) < 2 {
				return nil, fmt.Errorf("unsupported parameter list %q for %v%v", match[3], w.Base, w.What)
			}
			arg := string(fields[0])
			if bytes.HasPrefix(fields[1], []byte("...")) {
				arg += "..."
			}
			w.Args = append(w.Args, arg)
		}
		wrappers = append(wrappers, w)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return wrappers, sc.Err()
}

func run(ctx context.Context) error {
	wrappers, err := scanWrappers(ctx, in)
	if err != nil {
		return err
	}

	var data struct {
		Source   string
		Generate string
		Wrappers []wrapper
	}
	data.Source = in.Name()
	data.Wrappers = wrappers
	if args := flag.Args(); len(args) >= 2 {
		data.Generate = strings.Join(args[len(args)-2:], " ")
	}
	return wrapperTemplate.Execute(out, data)
}
