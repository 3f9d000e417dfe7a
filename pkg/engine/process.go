package engine

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/nullrend/vsthost/pkg/abi"
	"github.com/nullrend/vsthost/pkg/planar"
	"github.com/nullrend/vsthost/pkg/resample"
	"github.com/nullrend/vsthost/pkg/ring"
)

var (
	errNoInputSelected  = errors.New("no input device selected")
	errNoOutputSelected = errors.New("no output device selected")
)

// runState is everything the capture and playback callbacks need to
// process one block, built once by Run (and grown in place by
// ensureProcDataCapacity when a plugin loads mid-stream) and swapped
// into Engine.audio with a single atomic store. Nothing in here is
// touched by the control-plane mutex: the callbacks load the current
// *runState once per invocation and work only with what it points to.
type runState struct {
	channels int

	ringChannels []*ring.Channel // one per channel

	// chainInBuf/chainOutBuf are the plugin chain's native-block-size
	// scratch: the chain always runs at the raw capture block size,
	// never at a resampled frame count, so these are fixed at
	// blockSize frames and never need resizing.
	chainInBuf  *planar.Buffer
	chainOutBuf *planar.Buffer

	// resampler and resampledBuf are nil when input and output sample
	// rates match. resampledBuf is sized up front for the worst-case
	// output of one block through the resampler, so the post-chain
	// resample step never needs a buffer larger than what it was
	// constructed with.
	resampler    *resample.Converter
	resampledBuf *planar.Buffer

	// playbackBuf stages ring output before interleaving; reused every
	// block so playbackCallback never allocates.
	playbackBuf *planar.Buffer

	// procData is a pool of preallocated, reusable ProcessData
	// objects, one per chain position. processChain rebinds procData[i]
	// to each plugin's buffers via Bind instead of allocating a fresh
	// ProcessData per plugin per block.
	procData []*abi.ProcessData
}

// Run opens capture and playback streams for the currently selected
// devices and configs, wires malgo's interleaved callbacks through a
// per-channel ring buffer, and starts both streams. It blocks only long
// enough to start the devices; processing continues on malgo's own
// callback goroutines until Stop is called (via SelectBackend,
// SelectInput/Output, SetSampleRate/BufferSize, or Close).
func (e *Engine) Run() error {
	e.mu.Lock()
	inDev, outDev := e.inputDevice, e.outputDevice
	inCfg, outCfg := e.inputConfig, e.outputConfig
	e.mu.Unlock()

	if inDev == nil {
		return &StreamError{Op: "run", Err: errNoInputSelected}
	}
	if outDev == nil {
		return &StreamError{Op: "run", Err: errNoOutputSelected}
	}

	channels := outCfg.Channels
	if channels == 0 {
		channels = 2
	}
	blockSize := int(outCfg.BufferSize)
	if blockSize == 0 {
		blockSize = 512
	}
	if blockSize > planar.MaxBlockSize {
		return &StreamError{Op: "run", Err: fmt.Errorf("buffer size %d exceeds maximum block size %d", blockSize, planar.MaxBlockSize)}
	}

	ringCapacity := blockSize * 8
	ringChannels := make([]*ring.Channel, channels)
	for i := range ringChannels {
		ringChannels[i] = ring.NewChannel(ringCapacity)
	}

	chainInBuf := planar.New(channels, blockSize)
	chainOutBuf := planar.New(channels, blockSize)
	playbackBuf := planar.New(channels, blockSize)

	var conv *resample.Converter
	var resampledBuf *planar.Buffer
	if inCfg.SampleRate != 0 && outCfg.SampleRate != 0 && inCfg.SampleRate != outCfg.SampleRate {
		ratio := float64(outCfg.SampleRate) / float64(inCfg.SampleRate)
		conv = resample.New(ratio, channels, blockSize, resample.DefaultQuality())
		// +1 guards the ceil() rounding in resample.Converter.Process
		// against landing exactly on the buffer's capacity.
		resampleCapacity := int(math.Ceil(float64(blockSize)*ratio)) + 1
		resampledBuf = planar.New(channels, resampleCapacity)
	}

	chainLen := e.registry.len()
	procData := make([]*abi.ProcessData, chainLen)
	for i := range procData {
		procData[i] = abi.NewReusableProcessData(channels, channels)
	}

	e.audio.Store(&runState{
		channels:     channels,
		ringChannels: ringChannels,
		chainInBuf:   chainInBuf,
		chainOutBuf:  chainOutBuf,
		resampler:    conv,
		resampledBuf: resampledBuf,
		playbackBuf:  playbackBuf,
		procData:     procData,
	})

	captureConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	captureConfig.Capture.Format = toMalgoFormat(inCfg.Format)
	captureConfig.Capture.Channels = uint32(channels)
	captureConfig.SampleRate = inCfg.SampleRate
	captureConfig.PeriodSizeInFrames = uint32(blockSize)
	captureConfig.Alsa.NoMMap = 1

	playbackConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	playbackConfig.Playback.Format = toMalgoFormat(outCfg.Format)
	playbackConfig.Playback.Channels = uint32(channels)
	playbackConfig.SampleRate = outCfg.SampleRate
	playbackConfig.PeriodSizeInFrames = uint32(blockSize)
	playbackConfig.Alsa.NoMMap = 1

	captureDevice, err := malgo.InitDevice(e.malgoCtx.Context, captureConfig, malgo.DeviceCallbacks{
		Data: e.captureCallback(inCfg.Format),
	})
	if err != nil {
		e.audio.Store(nil)
		return &StreamError{Op: "init_capture", Err: err}
	}

	playbackDevice, err := malgo.InitDevice(e.malgoCtx.Context, playbackConfig, malgo.DeviceCallbacks{
		Data: e.playbackCallback(outCfg.Format),
	})
	if err != nil {
		captureDevice.Uninit()
		e.audio.Store(nil)
		return &StreamError{Op: "init_playback", Err: err}
	}

	if err := captureDevice.Start(); err != nil {
		captureDevice.Uninit()
		playbackDevice.Uninit()
		e.audio.Store(nil)
		return &StreamError{Op: "start_capture", Err: err}
	}
	if err := playbackDevice.Start(); err != nil {
		captureDevice.Stop()
		captureDevice.Uninit()
		playbackDevice.Uninit()
		e.audio.Store(nil)
		return &StreamError{Op: "start_playback", Err: err}
	}

	e.mu.Lock()
	e.captureDevice = captureDevice
	e.playbackDevice = playbackDevice
	e.running = true
	e.mu.Unlock()

	return nil
}

// captureCallback decodes the device's interleaved wire samples into
// the engine's planar input buffer, runs the plugin chain in place at
// the native block size, resamples the chain's output if the input and
// output sample rates differ, and pushes the result into the
// per-channel ring so the playback callback (which may run on a
// different period size or a different device clock) can drain it
// independently.
//
// This runs on malgo's real-time audio thread: it must not acquire the
// engine's control-plane mutex, allocate, or block. It reads rs once
// and works only with the buffers/pool rs already points to; every
// buffer, ring, and ProcessData was preallocated by Run (or grown by
// ensureProcDataCapacity on the control thread before becoming
// reachable here).
func (e *Engine) captureCallback(format SampleFormat) malgo.DataProc {
	return func(_, in []byte, frameCount uint32) {
		rs := e.audio.Load()
		if rs == nil {
			return
		}
		ctxs := e.registry.chain() // short RWMutex read lock, not e.mu
		chain := make([]interface {
			Process(*abi.ProcessData) abi.ResultCode
		}, len(ctxs))
		for i, c := range ctxs {
			chain[i] = c
		}

		n := int(frameCount)
		rs.chainInBuf.SetFrames(n)
		decodeInterleaved(in, rs.chainInBuf, rs.channels, n, format)

		rs.chainOutBuf.SetFrames(n)
		processChain(chain, rs.chainInBuf, rs.chainOutBuf, n, rs.procData)

		pushFrames := n
		pushSrc := rs.chainOutBuf
		if rs.resampler != nil {
			rs.resampledBuf.SetFrames(rs.resampledBuf.Capacity())
			pushFrames = rs.resampler.Process(rs.chainOutBuf.Planar(), rs.resampledBuf.Planar())
			rs.resampledBuf.SetFrames(pushFrames)
			pushSrc = rs.resampledBuf
		}

		planarOut := pushSrc.Planar()
		for ch := 0; ch < rs.channels && ch < len(rs.ringChannels); ch++ {
			pushed := rs.ringChannels[ch].TryPushBlock(planarOut[ch])
			if pushed < pushFrames {
				e.ringDrops.Add(uint64(pushFrames - pushed))
			}
		}
	}
}

// playbackCallback drains the per-channel ring into the device's
// interleaved output, falling back to silence for any channel that
// underruns rather than blocking the audio thread.
//
// Real-time constraints identical to captureCallback apply: no mutex,
// no allocation. playbackBuf is reused every block; TryPopBlock reads
// directly into its channel slices, so there is no separate scratch
// copy.
func (e *Engine) playbackCallback(format SampleFormat) malgo.DataProc {
	return func(out, _ []byte, frameCount uint32) {
		rs := e.audio.Load()
		if rs == nil {
			return
		}
		n := int(frameCount)
		rs.playbackBuf.SetFrames(n)
		planarOut := rs.playbackBuf.Planar()
		for ch := 0; ch < rs.channels; ch++ {
			dst := planarOut[ch][:n]
			got := 0
			if ch < len(rs.ringChannels) {
				got = rs.ringChannels[ch].TryPopBlock(dst)
			}
			if got < n {
				e.underruns.Add(uint64(n - got))
				for i := got; i < n; i++ {
					dst[i] = 0
				}
			}
		}
		encodeInterleaved(out, planarOut, rs.channels, n, format)
	}
}

// processChain runs every loaded plugin's Process across the chain at
// the native block size, ping-ponging between in and out so each
// plugin's output feeds the next plugin's input. The final result lands
// in out. procData must have at least len(chain) entries — callers
// guarantee this by growing the pool before a plugin becomes reachable
// through chain (see Engine.ensureProcDataCapacity).
func processChain(chain []interface {
	Process(*abi.ProcessData) abi.ResultCode
}, in, out *planar.Buffer, frames int, procData []*abi.ProcessData) {
	if len(chain) == 0 {
		copyPlanar(out, in, frames)
		return
	}

	cur, next := in, out
	for i, plugin := range chain {
		if i >= len(procData) {
			break
		}
		pd := procData[i]
		pd.Bind(abi.ProcessModeRealtime, int32(frames), cur.Planar(), next.Planar())
		plugin.Process(pd)
		cur, next = next, cur
	}
	if cur != out {
		copyPlanar(out, cur, frames)
	}
}

func copyPlanar(dst, src *planar.Buffer, frames int) {
	dp, sp := dst.Planar(), src.Planar()
	for ch := range dp {
		if ch >= len(sp) {
			break
		}
		copy(dp[ch][:frames], sp[ch][:frames])
	}
}

func toMalgoFormat(f SampleFormat) malgo.FormatType {
	switch f {
	case FormatI8:
		return malgo.FormatS16 // malgo has no 8-bit signed type; closest supported
	case FormatU8:
		return malgo.FormatU8
	case FormatI16:
		return malgo.FormatS16
	case FormatU16:
		return malgo.FormatS16
	case FormatI32:
		return malgo.FormatS32
	case FormatU32:
		return malgo.FormatS32
	case FormatF32:
		return malgo.FormatF32
	default:
		return malgo.FormatF32
	}
}

// decodeInterleaved converts a device's raw interleaved wire buffer
// into in's planar layout, normalizing every format to float32 in
// [-1, 1] for the plugin chain.
func decodeInterleaved(raw []byte, dst *planar.Buffer, channels, frames int, format SampleFormat) {
	planarDst := dst.Planar()
	switch format {
	case FormatF32:
		samples := unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				planarDst[ch][f] = samples[f*channels+ch]
			}
		}
	case FormatI8, FormatI16, FormatU16:
		samples := unsafe.Slice((*int16)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				planarDst[ch][f] = float32(samples[f*channels+ch]) / 32768.0
			}
		}
	case FormatI32, FormatU32:
		samples := unsafe.Slice((*int32)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				planarDst[ch][f] = float32(float64(samples[f*channels+ch]) / 2147483648.0)
			}
		}
	default:
		samples := unsafe.Slice((*uint8)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				planarDst[ch][f] = (float32(samples[f*channels+ch]) - 128) / 128.0
			}
		}
	}
}

// encodeInterleaved is decodeInterleaved's inverse, clamping to the
// target format's representable range.
func encodeInterleaved(raw []byte, src [][]float32, channels, frames int, format SampleFormat) {
	switch format {
	case FormatF32:
		samples := unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				samples[f*channels+ch] = clampF32(src[ch][f])
			}
		}
	case FormatI8, FormatI16, FormatU16:
		samples := unsafe.Slice((*int16)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				samples[f*channels+ch] = int16(clampF32(src[ch][f]) * 32767.0)
			}
		}
	case FormatI32, FormatU32:
		samples := unsafe.Slice((*int32)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				samples[f*channels+ch] = int32(float64(clampF32(src[ch][f])) * 2147483647.0)
			}
		}
	default:
		samples := unsafe.Slice((*uint8)(unsafe.Pointer(&raw[0])), channels*frames)
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				samples[f*channels+ch] = uint8(clampF32(src[ch][f])*128.0 + 128)
			}
		}
	}
}

func clampF32(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
