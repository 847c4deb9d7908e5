package main

import (
	"flag"
	"fmt"
	"log"
)

func main() {
	if err := mainErr(); err != nil {
		log.Fatal(err)
	}
}

type Config struct {
	remote     string
	port       int
	interval   float64
	mode       string
	maxSamples int
	maxSpread  float64
	network    string
}

func (c Config) validate() error {
	// the converted duration is what the ticker sees; sub-nanosecond
	// intervals truncate to zero and must be rejected here, not panic later
	if c.interval <= 0 || intervalDuration(c.interval) <= 0 {
		return fmt.Errorf("interval must be a positive duration, got %v", c.interval)
	}
	return nil
}

func mainErr() error {
	conf := Config{
		network: "udp4",
	}
	flag.IntVar(&conf.port, "port", 55555, "port to listen for incoming timestamps on, or the peer's port when streaming")
	flag.Float64Var(&conf.interval, "interval", 1.0, "timestamp sending interval (seconds)")
	flag.StringVar(&conf.mode, "mode", "samples", "output mode: samples or stats")
	flag.IntVar(&conf.maxSamples, "max-samples", 1000, "maximum number of samples kept by the stats window")
	flag.Float64Var(&conf.maxSpread, "max-spread", 3, "max spread of samples to be considered valid (after max-samples), as a factor of the standard deviation")

	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := conf.validate(); err != nil {
		return err
	}

	if conf.remote = flag.Arg(0); conf.remote == "" {
		return Reflect(conf)
	}

	return Measure(conf)
}
