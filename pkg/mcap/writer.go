package mcap

import (
	"io"
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/foxglove/mcap/go/mcap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	FramesTopic = "/video/frames"
	SchemaName  = "google.protobuf.Struct"
)

// Writer writes video frame timestamps into an MCAP file.
//
//   - One channel (/video/frames) using the google.protobuf.Struct schema.
//   - Each message carries {index, pts}; LogTime/PublishTime are the frame's
//     wall-clock PTS so frames line up with other recordings of the same session.
//   - Channel metadata records the source video.
type Writer struct {
	mu        sync.Mutex
	writer    *mcap.Writer
	channelID uint16
	sequence  uint32
}

// NewWriter initializes an MCAP writer with the frames channel registered.
// The provided io.Writer should be an opened file (will not be closed here).
func NewWriter(out io.Writer, videoPath string) (*Writer, error) {
	w, err := mcap.NewWriter(out, &mcap.WriterOptions{
		Chunked:     true,
		ChunkSize:   2 * 1024 * 1024,
		Compression: mcap.CompressionZSTD,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create MCAP writer")
	}

	if err := w.WriteHeader(&mcap.Header{
		Profile: "",
		Library: "framefind",
	}); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	fdSet := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			protodesc.ToFileDescriptorProto(structpb.File_google_protobuf_struct_proto),
		},
	}
	data, err := proto.Marshal(fdSet)
	if err != nil {
		return nil, errors.Wrap(err, "marshal schema descriptor")
	}

	const schemaID, channelID = uint16(1), uint16(1)
	if err := w.WriteSchema(&mcap.Schema{
		ID:       schemaID,
		Name:     SchemaName,
		Encoding: "protobuf",
		Data:     data,
	}); err != nil {
		return nil, errors.Wrap(err, "write schema")
	}

	if err := w.WriteChannel(&mcap.Channel{
		ID:              channelID,
		SchemaID:        schemaID,
		Topic:           FramesTopic,
		MessageEncoding: "protobuf",
		Metadata: map[string]string{
			"video": videoPath,
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "write channel (topic=%s)", FramesTopic)
	}

	return &Writer{
		writer:    w,
		channelID: channelID,
	}, nil
}

// WriteFrame writes one frame record. pts is in seconds; negative values log at time zero.
func (w *Writer) WriteFrame(index int, pts float64) error {
	msg, err := structpb.NewStruct(map[string]any{
		"index": index,
		"pts":   pts,
	})
	if err != nil {
		return errors.Wrap(err, "build frame message")
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal frame message")
	}

	logTime := ptsToNanos(pts)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.WriteMessage(&mcap.Message{
		ChannelID:   w.channelID,
		Sequence:    w.sequence,
		LogTime:     logTime,
		PublishTime: logTime,
		Data:        data,
	}); err != nil {
		return errors.Wrapf(err, "write frame %d", index)
	}
	w.sequence++
	return nil
}

// Close finalizes the MCAP file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Close()
}

func ptsToNanos(pts float64) uint64 {
	if math.IsNaN(pts) || pts <= 0 {
		return 0
	}
	ns := pts * 1e9
	if ns >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(ns)
}
