package ramdebug

// InfoKind identifies a GetInfo query. Values are bit-exact with
// spec.md §6.
type InfoKind uint8

const (
	MaxChannelsInfo InfoKind = 0
	BufferSizeInfo  InfoKind = 1
	SamplingFreqInfo InfoKind = 2
	SampleNumberInfo InfoKind = 3
)

// GetInfo answers an introspection query. Unknown kinds return
// (0, false).
func (e *Engine) GetInfo(kind InfoKind) (uint32, bool) {
	switch kind {
	case MaxChannelsInfo:
		return MaxChannels, true
	case BufferSizeInfo:
		return BufferElements, true
	case SamplingFreqInfo:
		return e.samplingFreqHz.Load(), true
	case SampleNumberInfo:
		return e.buf.WriteIndex(), true
	default:
		return 0, false
	}
}
