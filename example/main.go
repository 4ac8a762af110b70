package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxsocket-go"
	"golang.org/x/text/language"
)

var (
	host     = flag.String("h", "", "Host name")
	port     = flag.Int("p", 0, "Host port")
	message  = flag.String("m", "", "Send message")
	t        = flag.String("t", "", "Trace level.")
	min      = flag.Int("min", 0, "Minimum reply size in bytes.")
	discover = flag.Int("d", 0, "Discover servers with a broadcast to the given port.")
	lang     = flag.String("lang", "", "Used language.")
)

func CurrentLanguage() language.Tag {
	langEnv := os.Getenv("LANG")
	if langEnv == "" {
		return language.AmericanEnglish
	}
	langEnv = strings.Split(langEnv, ".")[0]
	tag, err := language.Parse(langEnv)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func main() {
	flag.Parse()
	if *discover == 0 && (*host == "" || *port == 0 || *message == "") {
		flag.PrintDefaults()
		return
	}

	if *discover != 0 {
		fmt.Printf("Looking for servers on broadcast port %d\n", *discover)
		reply, err := gxsocket.DiscoverServer([]byte(*message), uint16(*discover), 5*time.Second)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		fmt.Printf("Server found at %s: %q\n", reply.Address, reply.Payload)
		return
	}

	media := gxsocket.NewGXSocket()
	if *lang != "" {
		tag, err := language.Parse(*lang)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
		media.Localize(tag)
	}

	media.SetOnTrace(func(traceType gxcommon.TraceTypes, message string) {
		fmt.Printf("Trace: %s\n", message)
	})

	if *t != "" {
		tl, err := gxcommon.TraceLevelParse(*t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		err = media.SetTrace(tl)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
	}
	fmt.Printf("Host name: %s\n", *host)
	fmt.Printf("Host port: %d\n", *port)
	fmt.Printf("Message: '%s'\n", *message)

	if err := media.Create(); err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}
	//Close the connection.
	defer func() {
		if err := media.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()

	if err := media.Connect(*host, uint16(*port)); err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}

	if _, err := media.Send(*message); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	reply, err := media.ReceiveString(*min)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}
	fmt.Printf("Reply: %s\n", reply)
	fmt.Printf("Exit\n")
}
