package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"testing/iotest"
)

func payload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestReaderReportsEverySegment(t *testing.T) {
	data := payload(200 * 1024)
	var got []int64
	r := NewReader(context.Background(), data, DefaultSegmentSize, func(sent, total int64) {
		if total != int64(len(data)) {
			t.Errorf("total = %d, want %d", total, len(data))
		}
		got = append(got, sent)
	})

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("payload changed in transit")
	}

	want := []int64{65536, 131072, 196608, 204800}
	if !slices.Equal(got, want) {
		t.Errorf("progress = %v, want %v", got, want)
	}
	if r.Segments() != 4 {
		t.Errorf("Segments() = %d, want 4", r.Segments())
	}
	if r.Sent() != int64(len(data)) {
		t.Errorf("Sent() = %d, want %d", r.Sent(), len(data))
	}
}

func TestReaderShortReads(t *testing.T) {
	data := payload(25)
	var got []int64
	r := NewReader(context.Background(), data, 10, func(sent, _ int64) { got = append(got, sent) })

	out, err := io.ReadAll(iotest.OneByteReader(r))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("payload changed in transit")
	}
	if want := []int64{10, 20, 25}; !slices.Equal(got, want) {
		t.Errorf("progress = %v, want %v", got, want)
	}
}

func TestReaderEmpty(t *testing.T) {
	called := false
	r := NewReader(context.Background(), nil, 0, func(int64, int64) { called = true })
	n, err := r.Read(make([]byte, 8))
	if n != 0 || err != io.EOF {
		t.Fatalf("Read = %d, %v; want 0, EOF", n, err)
	}
	if called {
		t.Error("progress reported for an empty payload")
	}
	if r.Segments() != 0 {
		t.Errorf("Segments() = %d, want 0", r.Segments())
	}
}

func TestReaderStopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	data := payload(100)
	r := NewReader(ctx, data, 10, func(sent, _ int64) {
		if sent == 20 {
			cancel()
		}
	})

	out, err := io.ReadAll(r)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(out) != 20 {
		t.Errorf("read %d bytes before stopping, want 20", len(out))
	}
}

func TestProgress(t *testing.T) {
	var got [][2]int64
	p := NewProgress(30, func(sent, total int64) { got = append(got, [2]int64{sent, total}) })

	p.Start()
	p.Report(10, 30)
	p.Report(5, 30) // backwards, dropped
	p.Report(30, 30)
	p.Finish()
	p.Report(20, 30) // after finish, dropped
	p.Finish()

	want := [][2]int64{{0, 30}, {10, 30}, {30, 30}, {30, 30}}
	if !slices.Equal(got, want) {
		t.Errorf("reports = %v, want %v", got, want)
	}
}

func TestProgressConcurrentReportsStayOrdered(t *testing.T) {
	var (
		got      []int64
		inFlight atomic.Int32
		overlap  atomic.Bool
	)
	p := NewProgress(1000, func(sent, _ int64) {
		if inFlight.Add(1) > 1 {
			overlap.Store(true)
		}
		got = append(got, sent)
		inFlight.Add(-1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Report(int64(i), 1000)
		}()
	}
	wg.Wait()
	p.Finish()

	if overlap.Load() {
		t.Error("observer calls overlapped")
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("progress went backwards at %d: %v", i, got[i-1:i+1])
		}
	}
	if last := got[len(got)-1]; last != 1000 {
		t.Errorf("last report = %d, want 1000", last)
	}
}

func TestNewMultipart(t *testing.T) {
	data := payload(1000)
	body, err := NewMultipart("file", `my "pack".zip`, "application/x-zip-compressed", bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewMultipart: %v", err)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if int64(len(raw)) != body.Length {
		t.Errorf("Length = %d, body has %d bytes", body.Length, len(raw))
	}

	mediaType, params, err := mime.ParseMediaType(body.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type %q: %v", body.ContentType, err)
	}
	mr := multipart.NewReader(bytes.NewReader(raw), params["boundary"])

	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart: %v", err)
	}
	if part.FormName() != "file" {
		t.Errorf("FormName() = %q, want file", part.FormName())
	}
	if part.FileName() != `my "pack".zip` {
		t.Errorf("FileName() = %q", part.FileName())
	}
	if ct := part.Header.Get("Content-Type"); ct != "application/x-zip-compressed" {
		t.Errorf("part Content-Type = %q", ct)
	}
	got, err := io.ReadAll(part)
	if err != nil {
		t.Fatalf("read part: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("part content differs from payload")
	}
	if _, err := mr.NextPart(); err != io.EOF {
		t.Errorf("second NextPart err = %v, want EOF", err)
	}
}
