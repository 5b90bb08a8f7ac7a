// Package gui is the SDL2 host shim: it streams the console's framebuffer
// to a window, queues its PCM output to an audio device, and feeds keyboard
// state back into the controllers.
package gui

import (
	"runtime"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/nes"
)

const (
	windowScale = 3
	windowTitle = "famicore"

	audioSampleRate = 44100
	audioBufferSize = 1024
	audioChannels   = 2
)

// frameTime is the NTSC frame duration: 1789773 Hz / 29780.5 cycles
var frameTime = time.Duration(float64(time.Second) / 60.0988)

// GUI owns the SDL window, renderer, texture and audio device
type GUI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	console  *nes.Console
	running  bool

	audioDevice sdl.AudioDeviceID
}

// New creates the window and audio device for the given console
func New(console *nes.Console) (*GUI, error) {
	// SDL requires the main thread
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		nes.FrameWidth*windowScale,
		nes.FrameHeight*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	// ABGR8888 matches the framebuffer's R,G,B,A byte order on little-endian
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		nes.FrameWidth,
		nes.FrameHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	g := &GUI{
		window:   window,
		renderer: renderer,
		texture:  texture,
		console:  console,
		running:  true,
	}

	if err := g.initAudio(); err != nil {
		// Run silent rather than not at all
		logger.LogError("audio init failed, continuing without sound: %v", err)
	}

	return g, nil
}

func (g *GUI) initAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     audioSampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: audioChannels,
		Samples:  audioBufferSize,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}
	g.audioDevice = device
	sdl.PauseAudioDevice(device, false)
	return nil
}

// Destroy releases all SDL resources
func (g *GUI) Destroy() {
	if g.audioDevice != 0 {
		sdl.CloseAudioDevice(g.audioDevice)
	}
	if g.texture != nil {
		g.texture.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Destroy()
	}
	if g.window != nil {
		g.window.Destroy()
	}
	sdl.Quit()
}

// Run drives the console at NTSC pace until quit
func (g *GUI) Run() {
	frameCount := 0
	startTime := time.Now()

	for g.running {
		g.handleEvents()
		g.console.StepFrame()
		g.queueAudio()
		g.render()

		// Pace against total elapsed time so sleep jitter cancels out
		frameCount++
		target := startTime.Add(time.Duration(frameCount) * frameTime)
		if now := time.Now(); now.Before(target) {
			time.Sleep(target.Sub(now))
		}
	}
}

func (g *GUI) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			g.running = false
		case *sdl.KeyboardEvent:
			g.handleKeyboard(e)
		}
	}
}

var keyBindings = map[sdl.Keycode]input.Button{
	sdl.K_z:     input.ButtonA,
	sdl.K_x:     input.ButtonB,
	sdl.K_a:     input.ButtonSelect,
	sdl.K_s:     input.ButtonStart,
	sdl.K_UP:    input.ButtonUp,
	sdl.K_DOWN:  input.ButtonDown,
	sdl.K_LEFT:  input.ButtonLeft,
	sdl.K_RIGHT: input.ButtonRight,
}

func (g *GUI) handleKeyboard(event *sdl.KeyboardEvent) {
	pressed := event.State == sdl.PRESSED

	if event.Keysym.Sym == sdl.K_ESCAPE {
		g.running = false
		return
	}
	if button, ok := keyBindings[event.Keysym.Sym]; ok {
		g.console.SetButton(0, button, pressed)
	}
}

func (g *GUI) queueAudio() {
	samples := g.console.AudioSamples()
	if g.audioDevice == 0 || len(samples) == 0 {
		return
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*2)
	if err := sdl.QueueAudio(g.audioDevice, buf); err != nil {
		logger.LogError("audio queue: %v", err)
	}
}

func (g *GUI) render() {
	pixels := g.console.FramePixels()
	if err := g.texture.Update(nil, unsafe.Pointer(&pixels[0]), nes.FrameWidth*4); err != nil {
		logger.LogError("texture update: %v", err)
		return
	}
	g.renderer.Clear()
	g.renderer.Copy(g.texture, nil, nil)
	g.renderer.Present()
}
