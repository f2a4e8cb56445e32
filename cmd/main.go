package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/goshaderpaint/engine"
	"github.com/richinsley/goshaderpaint/export"
	"github.com/richinsley/goshaderpaint/glcontext"
	"github.com/richinsley/goshaderpaint/imageio"
	"github.com/richinsley/goshaderpaint/options"
	"github.com/richinsley/goshaderpaint/resources"
	"github.com/richinsley/goshaderpaint/save"
	"github.com/richinsley/goshaderpaint/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{
		ImagePath:  flag.String("image", "", "Path to the image to edit"),
		ImageURL:   flag.String("url", "", "URL of the image to edit (used when -image is not set)"),
		ShaderPath: flag.String("shader", "", "Path to the fragment shader (default: passthrough)"),
		Width:      flag.Int("width", 1280, "Window width before an image is loaded"),
		Height:     flag.Int("height", 720, "Window height before an image is loaded"),
		Watch:      flag.Bool("watch", true, "Recompile when the shader file changes"),
		Record:     flag.Bool("record", false, "Enable recording mode"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		Codec:      flag.String("codec", "h264", "Video codec for recording (h264 or hevc)"),
		SlotsPath:  flag.String("slots", "slots.json", "Path to the shader save-slot file"),
	}
	var help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		fmt.Println("goshaderpaint - live fragment-shader image editor")
		flag.PrintDefaults()
		return
	}

	decoded, err := loadImage(opts)
	if err != nil {
		log.Fatalf("Error loading image: %v", err)
	}
	log.Printf("Loaded %dx%d image", decoded.Width, decoded.Height)

	fragmentSource := shader.DefaultFragmentSource
	if *opts.ShaderPath != "" {
		data, err := os.ReadFile(*opts.ShaderPath)
		if err != nil {
			log.Fatalf("Error reading shader %s: %v", *opts.ShaderPath, err)
		}
		fragmentSource = string(data)
	}
	reportValidation(shader.Validate(fragmentSource))

	if err := glcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glcontext.TerminateGraphics()

	win, err := glcontext.New(*opts.Width, *opts.Height, "goshaderpaint", !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer win.Shutdown()

	eng, err := engine.New(context.Background(), win)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Shutdown()

	eng.Subscribe(func(ev engine.Event) {
		switch ev.Kind {
		case engine.EventImageLoaded:
			log.Printf("Image loaded: %dx%d", ev.Width, ev.Height)
		case engine.EventImageUnloaded:
			log.Printf("Image unloaded: %dx%d", ev.Width, ev.Height)
		}
	})

	if err := eng.SetImage(decoded.RGBA); err != nil {
		log.Fatalf("Failed to upload image: %v", err)
	}
	eng.SetShaderText(fragmentSource)
	if err := eng.Compile(); err != nil {
		logShaderError(err)
		log.Fatalf("Initial shader compilation failed")
	}
	eng.Snapshot()

	if *opts.Record {
		log.Println("Starting recording...")
		err := export.Record(eng, export.RecordOptions{
			Width:      decoded.Width,
			Height:     decoded.Height,
			FPS:        *opts.FPS,
			Duration:   *opts.Duration,
			OutputFile: *opts.OutputFile,
			Codec:      *opts.Codec,
		})
		if err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Successfully recorded to %s", *opts.OutputFile)
		return
	}

	store, err := save.Open(*opts.SlotsPath)
	if err != nil {
		log.Fatalf("Failed to open save slots: %v", err)
	}

	bindKeys(win, eng, store)
	if *opts.Watch && *opts.ShaderPath != "" {
		stop, err := watchShaderFile(eng, *opts.ShaderPath)
		if err != nil {
			log.Printf("Shader watch disabled: %v", err)
		} else {
			defer stop()
		}
	}

	log.Println("Starting render loop...")
	eng.Start()
}

func loadImage(opts *options.Options) (*imageio.DecodedImage, error) {
	switch {
	case *opts.ImagePath != "":
		return imageio.LoadFromFile(*opts.ImagePath)
	case *opts.ImageURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return imageio.LoadFromURL(ctx, *opts.ImageURL)
	default:
		return nil, errors.New("no image given; use -image or -url")
	}
}

func reportValidation(result shader.ValidationResult) {
	for _, w := range result.Warnings {
		log.Printf("shader warning: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("shader error: %s", e)
	}
}

// logShaderError prints a compile or link failure with per-line diagnostics
// when the log carries them.
func logShaderError(err error) {
	var compileErr *resources.CompileError
	if errors.As(err, &compileErr) {
		log.Printf("%s shader failed to compile:", compileErr.Stage)
		diags := shader.ParseInfoLog(compileErr.Log)
		if len(diags) == 0 {
			log.Printf("  %s", compileErr.Log)
			return
		}
		for _, d := range diags {
			log.Printf("  line %d, col %d: %s", d.Line, d.Column, d.Message)
		}
		return
	}
	log.Printf("shader error: %v", err)
}

func bindKeys(win *glcontext.Context, eng *engine.Engine, store *save.Store) {
	win.RegisterKeyCallback(glfw.KeySpace, func() {
		eng.TogglePause()
	})
	win.RegisterKeyCallback(glfw.KeyR, func() {
		eng.SetRotation((eng.Transform().Rotation + 90) % 360)
		eng.Snapshot()
	})
	win.RegisterKeyCallback(glfw.KeyH, func() {
		eng.SetMirrorX(!eng.Transform().MirrorX)
		eng.Snapshot()
	})
	win.RegisterKeyCallback(glfw.KeyV, func() {
		eng.SetMirrorY(!eng.Transform().MirrorY)
		eng.Snapshot()
	})
	win.RegisterKeyCallback(glfw.KeyZ, func() {
		if err := eng.Undo(); err != nil {
			logShaderError(err)
		}
	})
	win.RegisterKeyCallback(glfw.KeyX, func() {
		if err := eng.Redo(); err != nil {
			logShaderError(err)
		}
	})
	win.RegisterKeyCallback(glfw.KeyP, func() {
		w, h := win.GetFramebufferSize()
		path := fmt.Sprintf("capture_%d.png", time.Now().Unix())
		if err := export.SavePNG(eng, path, eng.Elapsed(), w, h); err != nil {
			log.Printf("Capture failed: %v", err)
			return
		}
		log.Printf("Saved %s", path)
	})
	win.RegisterKeyCallback(glfw.KeyS, func() {
		slot := 0
		for i, s := range store.List() {
			if s == nil {
				slot = i
				break
			}
		}
		name := fmt.Sprintf("shader %s", time.Now().Format("2006-01-02 15:04:05"))
		if err := store.Save(slot, name, eng.ShaderText()); err != nil {
			log.Printf("Save failed: %v", err)
			return
		}
		log.Printf("Saved shader to slot %d", slot+1)
	})
	for i := 0; i < save.SlotCount; i++ {
		slot := i
		win.RegisterKeyCallback(glfw.Key1+glfw.Key(i), func() {
			rec, err := store.Load(slot)
			if err != nil {
				log.Printf("Slot %d: %v", slot+1, err)
				return
			}
			eng.SetShaderText(rec.ShaderText)
			reportValidation(eng.Validate())
			if err := eng.Compile(); err != nil {
				logShaderError(err)
				return
			}
			eng.Snapshot()
			log.Printf("Loaded slot %d (%s)", slot+1, rec.Name)
		})
	}
}

// watchShaderFile recompiles when the shader file changes on disk. fsnotify
// events arrive on a watcher goroutine; the reload itself runs on the render
// thread via the engine's per-frame hook.
func watchShaderFile(eng *engine.Engine, path string) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	reload := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					select {
					case reload <- struct{}{}:
					default:
					}
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("shader watch error: %v", werr)
			}
		}
	}()

	eng.OnFrame(func() {
		select {
		case <-reload:
		default:
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to reload %s: %v", path, err)
			return
		}
		eng.SetShaderText(string(data))
		reportValidation(eng.Validate())
		if err := eng.Compile(); err != nil {
			logShaderError(err)
			return
		}
		eng.Snapshot()
		log.Printf("Recompiled %s", path)
	})

	log.Printf("Watching %s for changes", path)
	return func() { watcher.Close() }, nil
}
