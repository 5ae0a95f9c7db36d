// SPDX-License-Identifier: EPL-2.0

// Command mp3gapless inspects, decodes and retags MPEG audio files.
//
//	mp3gapless info <file.mp3>...
//	mp3gapless decode -o out.wav [-mono] [-backend go-mp3|minimp3] <file>...
//	mp3gapless retag -o out.mp3 [-delay n] [-padding n] <file.mp3>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/mp3gapless"
	"github.com/ik5/mp3gapless/audio"
	"github.com/ik5/mp3gapless/formats/mp3"
	"github.com/ik5/mp3gapless/formats/wav"
	"github.com/ik5/mp3gapless/vbrtag"
)

const usage = `usage: mp3gapless <command> [flags] <file>...

commands:
  info    print the frame header, Xing/LAME tag and ID3 tags
  decode  decode one or more files back to back into a WAV file
  retag   rewrite the Xing/LAME tag of an MP3 file
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("mp3gapless: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "info":
		err = runInfo(args)
	case "decode":
		err = runDecode(args)
	case "retag":
		err = runRetag(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		log.Fatalf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// backendFlag is a flag.Value selecting the frame decoder.
type backendFlag mp3.Backend

func (b *backendFlag) String() string { return mp3.Backend(*b).String() }

func (b *backendFlag) Set(s string) error {
	for _, cand := range []mp3.Backend{mp3.BackendGoMP3, mp3.BackendMiniMP3} {
		if strings.EqualFold(s, cand.String()) {
			*b = backendFlag(cand)
			return nil
		}
	}
	return fmt.Errorf("unknown backend %q", s)
}

// optionalFlag is an int flag that records whether it was set.
type optionalFlag struct{ v vbrtag.Optional }

func (o *optionalFlag) String() string { return o.v.String() }

func (o *optionalFlag) Set(s string) error {
	var n int
	if _, err := fmt.Sscan(s, &n); err != nil {
		return err
	}
	if n < 0 || n > 0xFFF {
		return fmt.Errorf("%d out of range [0, 4095]", n)
	}
	o.v = vbrtag.Some(n)
	return nil
}

func decoderFlags(fs *flag.FlagSet) *mp3.Decoder {
	dec := &mp3.Decoder{}
	fs.Var((*backendFlag)(&dec.Backend), "backend", "frame decoder: go-mp3 or minimp3")
	fs.IntVar(&dec.DefaultEncoderDelay, "default-delay", mp3.DefaultEncoderDelay, "encoder delay assumed for untagged files")
	return dec
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dec := decoderFlags(fs)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("info: no input files")
	}

	var errs []error
	for _, path := range fs.Args() {
		if err := printInfo(os.Stdout, path, *dec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func printInfo(w io.Writer, path string, dec mp3.Decoder) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := mp3gapless.Inspect(f, dec)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  stream    %s\n", info.Header)
	fmt.Fprintf(w, "  duration  %s (%d samples", info.Duration(), info.Length)
	if info.Estimated {
		fmt.Fprint(w, ", estimated")
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  trim      %d start, %d end\n", info.SkipStart, info.SkipEnd)

	if t := info.Tag; t != nil {
		fmt.Fprintf(w, "  tag       %s frames=%v bytes=%v scale=%v\n", t.Magic, t.Frames, t.Bytes, t.VBRScale)
		if l := t.Lame; l != nil {
			fmt.Fprintf(w, "  encoder   %s method=%d lowpass=%d Hz ath=%d\n", l.Version, l.VBRMethod, l.LowpassHz, l.ATHType)
			fmt.Fprintf(w, "  gapless   delay=%d padding=%d music=%d bytes crc-ok=%t\n", l.EncDelay, l.EncPadding, l.MusicLength, l.CRCValid)
			if l.RadioGain.Set() {
				fmt.Fprintf(w, "  gain      radio %+.1f dB\n", l.RadioGain.DB())
			}
			if l.AudiophileGain.Set() {
				fmt.Fprintf(w, "  gain      audiophile %+.1f dB\n", l.AudiophileGain.DB())
			}
		}
	}

	if md := info.Metadata; md != nil {
		fmt.Fprintf(w, "  id3       %s %q by %q (%s)\n", md.Format(), md.Title(), md.Artist(), md.Album())
	}
	fmt.Fprintf(w, "  audio sha1 %s\n", info.AudioSum)

	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	dec := decoderFlags(fs)
	out := fs.String("o", "out.wav", "output WAV file")
	mono := fs.Bool("mono", false, "mix down to one channel")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("decode: no input files")
	}

	reg := mp3gapless.NewRegistry(*dec)

	srcs := make([]audio.Source, 0, fs.NArg())
	closeAll := func() {
		for _, s := range srcs {
			s.Close()
		}
	}
	for _, path := range fs.Args() {
		src, err := mp3gapless.OpenFile(reg, path)
		if err != nil {
			closeAll()
			return err
		}
		srcs = append(srcs, src)
	}

	concat, err := audio.NewConcat(srcs...)
	if err != nil {
		closeAll()
		return err
	}

	var src audio.Source = concat
	if *mono {
		src = audio.NewMonoMixer(concat)
	}
	defer src.Close()

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := wav.NewWriter(f, src.SampleRate(), src.Channels())
	if err != nil {
		return err
	}
	w.SetMetadata(wavMetadata(fs.Arg(0)))

	buf := make([]float32, src.BufSize())
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if werr := w.WriteFloat32(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", fs.Arg(concat.Current()), err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	log.Printf("wrote %d frames (%d Hz, %d ch) to %s", w.Frames(), src.SampleRate(), src.Channels(), *out)

	return nil
}

// wavMetadata copies the ID3 tags of path into a LIST/INFO chunk.
func wavMetadata(path string) *gowav.Metadata {
	m := &gowav.Metadata{Software: "mp3gapless"}

	f, err := os.Open(path)
	if err != nil {
		return m
	}
	defer f.Close()

	md, err := mp3gapless.ReadMetadata(f)
	if err != nil || md == nil {
		return m
	}

	m.Title = md.Title()
	m.Artist = md.Artist()
	m.Product = md.Album()
	m.Genre = md.Genre()
	m.Comments = md.Comment()

	return m
}

func runRetag(args []string) error {
	fs := flag.NewFlagSet("retag", flag.ExitOnError)
	out := fs.String("o", "", "output file (required)")
	var opts mp3gapless.RetagOptions
	var delay, padding optionalFlag
	fs.Var(&delay, "delay", "encoder delay in samples")
	fs.Var(&padding, "padding", "encoder padding in samples")
	fs.StringVar(&opts.Version, "version", "", "encoder version string, at most 9 bytes")
	_ = fs.Parse(args)

	if fs.NArg() != 1 || *out == "" {
		return errors.New("retag: need -o and exactly one input file")
	}
	opts.EncoderDelay, opts.EncoderPadding = delay.v, padding.v

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	f, err := os.OpenFile(*out, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	tag, err := mp3gapless.Retag(f, in, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	log.Printf("%s: %s tag, %v frames, delay %v, padding %v", *out, tag.Magic, tag.Frames, tag.EncDelay, tag.EncPadding)

	return f.Close()
}
