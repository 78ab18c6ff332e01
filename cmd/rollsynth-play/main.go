package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsariola/rollsynth"
	"github.com/vsariola/rollsynth/cmd"
	"github.com/vsariola/rollsynth/oto"
	"github.com/vsariola/rollsynth/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the current working directory.")
	play := flag.Bool("p", false, "Play the input songs after rendering them.")
	noWav := flag.Bool("n", false, "Do not output .wav files; useful together with -p.")
	workers := flag.Int("j", 1, "Number of goroutines used for rendering. 1 renders serially; 0 uses one per CPU.")
	versionFlag := flag.Bool("v", false, "Print version.")
	verbose := flag.Bool("V", false, "Log each rendered song to standard error.")
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
	renderer := cmd.NewRenderer(*workers)
	var audioContext rollsynth.AudioContext
	if *play {
		var err error
		audioContext, err = oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
	}
	process := func(filename string) error {
		song, err := rollsynth.LoadSong(filename)
		if err != nil {
			return err
		}
		buffer, err := rollsynth.Play(renderer, song)
		if err != nil {
			return fmt.Errorf("rollsynth.Play failed: %w", err)
		}
		if *verbose {
			log.Printf("%v: %d samples (%.2f s) with the %v renderer", filename, len(buffer), float64(len(buffer))/rollsynth.SampleRate, renderer.Name())
		}
		if !*noWav {
			wav, err := rollsynth.Wav(buffer)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %w", err)
			}
			if err := output(filename, *directory, *stdout, wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %w", err)
			}
		}
		if *play {
			rollsynth.Normalize(buffer)
			playback := audioContext.Play(rollsynth.PCM16(buffer))
			playback.Wait()
			if err := playback.Close(); err != nil {
				return fmt.Errorf("error closing playback: %w", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			var files []string
			for _, pattern := range []string{"*.yml", "*.yaml", "*.json"} {
				matches, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not glob the path %v for %v files: %v\n", param, pattern, err)
					retval = 1
					continue
				}
				files = append(files, matches...)
			}
			for _, file := range files {
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			if err := process(param); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func output(filename, dir string, stdout bool, contents []byte) error {
	if stdout {
		_, err := os.Stdout.Write(contents)
		return err
	}
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
		}
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create output directory %v: %w", dir, err)
	}
	_, name := filepath.Split(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".wav"
	return rollsynth.WriteFile(filepath.Join(dir, name), contents)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "rollsynth command line utility for rendering .yml/.json song files to .wav.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
