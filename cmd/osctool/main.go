// Command osctool is a small demonstration CLI over the phorcys codec and
// address-pattern compiler: it can send a single OSC message, listen for
// incoming packets and report which patterns they match, or just compile a
// pattern and print its canonical regular expression.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kb10uy/phorcys"
	"github.com/kb10uy/phorcys/pattern"
)

var (
	modeFlag       = flag.String("mode", "", "`mode` to run in: one of \"send\", \"receive\", or \"match\"")
	listenAddrFlag = flag.String("listen_addr", "127.0.0.1:0", "`host:port` to listen on, in receive mode")
	sendAddrFlag   = flag.String("send_addr", "", "`host:port` to send to, in send mode")
	addressFlag    = flag.String("address", "/test", "OSC address to send to in send mode, or to test against the patterns in match mode")
	valueFlag      = flag.Int("value", 0, "int32 argument value to send, in send mode")
	patternsFlag   = flag.String("patterns", "/test", "comma-separated address patterns to match against, in receive/match mode")
	workersFlag    = flag.Int("workers", 4, "number of goroutines handling received packets, in receive mode")
)

func main() {
	flag.Parse()

	ctx := context.Background()
	var err error
	switch *modeFlag {
	case "send":
		err = send(ctx)
	case "receive":
		err = receive(ctx)
	case "match":
		err = match()
	default:
		log.Fatalf("unknown mode %q: must be \"send\", \"receive\", or \"match\"", *modeFlag)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func send(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", *listenAddrFlag)
	if err != nil {
		return err
	}
	defer conn.Close()

	builder, err := phorcys.NewMessageBuilder(*addressFlag)
	if err != nil {
		return err
	}
	msg := builder.PushArgument(phorcys.NewInt32(int32(*valueFlag))).Build()

	buf, err := phorcys.NewMessagePacket(msg).Serialize(nil)
	if err != nil {
		return err
	}

	addr, err := net.ResolveUDPAddr("udp", *sendAddrFlag)
	if err != nil {
		return err
	}
	log.Printf("sending %s to %s", msg, addr)

	_, err = conn.WriteTo(buf, addr)
	return err
}

// receive listens for packets and reports, for each contained Message,
// which of the configured patterns it matches. It does not dispatch to
// registered handlers: each packet is just logged against the whole
// pattern set by a small fixed worker pool.
func receive(ctx context.Context) error {
	patterns, err := compilePatterns(*patternsFlag)
	if err != nil {
		return err
	}

	conn, err := net.ListenPacket("udp", *listenAddrFlag)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("listening on %s", conn.LocalAddr())

	recv := make(chan phorcys.Packet, 100)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		buf := make([]byte, 1<<16)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if n > 0 {
				packet, perr := phorcys.DeserializePacket(buf[:n])
				if perr != nil {
					log.Printf("invalid packet from %v: %v", addr, perr)
				} else {
					select {
					case recv <- packet:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			}
			if err != nil {
				return err
			}
		}
	})

	for i := 0; i < *workersFlag; i++ {
		g.Go(func() error {
			for {
				var packet phorcys.Packet
				select {
				case <-gctx.Done():
					return gctx.Err()
				case packet = <-recv:
				}
				reportPacket(packet, patterns)
			}
		})
	}

	return g.Wait()
}

func reportPacket(packet phorcys.Packet, patterns map[string]pattern.AddressPattern) {
	if packet.Message == nil {
		log.Printf("received bundle: %s", packet.Bundle)
		if packet.Bundle != nil {
			for _, elem := range packet.Bundle.Elements() {
				reportPacket(elem, patterns)
			}
		}
		return
	}
	addr := packet.Message.Address().String()
	var matched []string
	for src, compiled := range patterns {
		if compiled.MatchString(addr) {
			matched = append(matched, src)
		}
	}
	log.Printf("received %s, matched patterns: %v", packet.Message, matched)
}

func match() error {
	patterns, err := compilePatterns(*patternsFlag)
	if err != nil {
		return err
	}
	for src, compiled := range patterns {
		matches := compiled.MatchString(*addressFlag)
		log.Printf("%s -> %s (matches %q: %v)", src, compiled.String(), *addressFlag, matches)
	}
	return nil
}

func compilePatterns(raw string) (map[string]pattern.AddressPattern, error) {
	out := make(map[string]pattern.AddressPattern)
	for _, p := range strings.Split(raw, ",") {
		compiled, err := pattern.Compile(p)
		if err != nil {
			return nil, err
		}
		out[p] = compiled
	}
	return out, nil
}
