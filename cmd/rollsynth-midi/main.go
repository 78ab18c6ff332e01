package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/template"

	"github.com/Masterminds/sprig"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/rollsynth/midi"
	"github.com/vsariola/rollsynth/version"
)

const defaultTemplate = `{{ .Path }}: format {{ .File.Format }}, {{ len .File.Tracks }} {{ if eq (len .File.Tracks) 1 }}track{{ else }}tracks{{ end }}, division {{ .File.Division }}
{{- range $i, $t := .File.Tracks }}
--- track {{ $i }}: {{ $t.Name | default "Unknown" | quote }}, instrument {{ $t.Instrument | default "Unknown" | quote }}, {{ $t.Length }} ticks
{{- range $t.Tempos }}
  tempo {{ printf "%.2f" .BPM }} bpm at {{ .Tick }}
{{- end }}
{{- range $t.TimeSignatures }}
  time signature {{ . }} at {{ .Tick }}
{{- end }}
{{- range $t.Notes }}
  {{ printf "%8d" .StartTick }} ch {{ add .Channel 1 | printf "%-2d" }} key {{ printf "%-3d" .Key }} vel {{ printf "%-3d" .Velocity }} len {{ .Duration }}
{{- end }}
{{- end }}
`

func main() {
	help := flag.Bool("h", false, "Show help.")
	yamlOut := flag.Bool("y", false, "Output the decoded files as .yml instead of using the template.")
	tmplFile := flag.String("t", "", "Use the text/template in this file instead of the default listing. Sprig functions are available.")
	diagnostics := flag.Bool("d", false, "Print decoder diagnostics (text events, skipped chunks, unknown status bytes) to standard error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	tmplText := defaultTemplate
	if *tmplFile != "" {
		b, err := os.ReadFile(*tmplFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read template %v: %v\n", *tmplFile, err)
			os.Exit(1)
		}
		tmplText = string(b)
	}
	tmpl, err := template.New("dump").Funcs(sprig.TxtFuncMap()).Parse(tmplText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse template: %v\n", err)
		os.Exit(1)
	}
	var decoder midi.Decoder
	if *diagnostics {
		decoder.Logger = log.New(os.Stderr, "midi: ", 0)
	}
	retval := 0
	for _, path := range flag.Args() {
		if err := dump(os.Stdout, &decoder, tmpl, path, *yamlOut); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", path, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func dump(w io.Writer, decoder *midi.Decoder, tmpl *template.Template, path string, yamlOut bool) error {
	file, err := decoder.Decode(path)
	if err != nil {
		return err
	}
	if yamlOut {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("could not marshal the file as .yml: %w", err)
		}
		return nil
	}
	data := struct {
		Path string
		File *midi.File
	}{path, file}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("could not execute template: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "rollsynth command line utility for decoding and listing .mid files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
