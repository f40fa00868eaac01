// Command washerd runs the washing machine cycle controller: it polls the
// panel buttons, advances the wash state machine, drives the valve and motor
// outputs over GPIO, and publishes state changes to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/washerd/internal/buttons"
	"github.com/sweeney/washerd/internal/gpio"
	"github.com/sweeney/washerd/internal/mqtt"
	"github.com/sweeney/washerd/internal/sensor"
	"github.com/sweeney/washerd/internal/status"
	"github.com/sweeney/washerd/internal/washer"
	"github.com/sweeney/washerd/internal/web"
)

// pinConfig holds the BCM pin assignments.
type pinConfig struct {
	start, stop, up, down int
	hot, cold, fwd, rev   int
}

func main() {
	poll := flag.Duration("poll", 100*time.Millisecond, "Control loop interval")
	debounce := flag.Duration("debounce", 250*time.Millisecond, "Button debounce duration")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	tempPath := flag.String("temp-path", sensor.DefaultIIOPath, "IIO attribute holding the raw ADC value")
	printTemp := flag.Bool("print-temp", false, "Print current water temperature and exit")

	pinStart := flag.Int("pin-start", gpio.DefaultPinStart, "BCM pin number for the Start button")
	pinStop := flag.Int("pin-stop", gpio.DefaultPinStop, "BCM pin number for the Stop button")
	pinUp := flag.Int("pin-up", gpio.DefaultPinUp, "BCM pin number for the Program-Up button")
	pinDown := flag.Int("pin-down", gpio.DefaultPinDown, "BCM pin number for the Program-Down button")
	pinHot := flag.Int("pin-hot", gpio.DefaultPinHotValve, "BCM pin number for the hot water valve")
	pinCold := flag.Int("pin-cold", gpio.DefaultPinColdValve, "BCM pin number for the cold water valve")
	pinFwd := flag.Int("pin-fwd", gpio.DefaultPinMotorForward, "BCM pin number for the motor forward winding")
	pinRev := flag.Int("pin-rev", gpio.DefaultPinMotorReverse, "BCM pin number for the motor reverse winding")

	flag.Parse()

	pins := pinConfig{
		start: *pinStart, stop: *pinStop, up: *pinUp, down: *pinDown,
		hot: *pinHot, cold: *pinCold, fwd: *pinFwd, rev: *pinRev,
	}
	if err := run(*poll, *debounce, *broker, *heartbeat, pins, *tempPath, *printTemp, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll, debounce time.Duration, broker string, heartbeat time.Duration, pins pinConfig, tempPath string, printTemp bool, httpAddr string) error {
	// Initialize temperature sensor
	adc := sensor.NewIIO(tempPath)
	defer adc.Close()

	// Print temperature mode
	if printTemp {
		t, err := adc.ReadTemperature()
		if err != nil {
			return fmt.Errorf("read temperature: %w", err)
		}
		fmt.Printf("%.1f C\n", t)
		return nil
	}

	// Initialize GPIO
	btns, err := gpio.NewRealButtons(pins.start, pins.stop, pins.up, pins.down)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer btns.Close()

	driver, err := gpio.NewRealDriver(pins.hot, pins.cold, pins.fwd, pins.rev)
	if err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	defer driver.Close()

	// A sensor that never answers keeps reporting the mix band, which
	// commands both valves during a fill.
	sens := sensor.NewLatched(adc, 30.0)

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		DebounceMs:  debounce.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		FillMs:      int64(washer.FillDurationMs),
		Broker:      broker,
		HTTPAddr:    httpAddr,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v debounce=%v broker=%s heartbeat=%v", poll, debounce, broker, heartbeat)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(btns, driver, sens, publisher, publisher, tracker, debounce, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(btns gpio.ButtonReader, driver gpio.Driver, sens washer.TemperatureSensor, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, debounce, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()

	sink := &loopSink{tracker: tracker, publisher: publisher, now: startTime}
	outputs := &loopOutputs{driver: driver, tracker: tracker}
	controller := washer.New(outputs, sink, sens)
	controller.Init()

	detector := buttons.NewDetector(debounce)
	lastHeartbeat := startTime

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			sink.now = t
			ticks := uint32(t.Sub(startTime).Milliseconds())

			// Buttons first: a press is always fully applied before the
			// update that follows it in the same iteration.
			sample, err := btns.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
			} else {
				presses := detector.Process(buttons.Sample{
					Start: sample.Start,
					Stop:  sample.Stop,
					Up:    sample.Up,
					Down:  sample.Down,
				}, t)
				for _, b := range presses {
					log.Printf("button: %s", b)
					controller.HandleButton(b, ticks)
				}
			}

			controller.Update(ticks)

			// Sample temperature for the display regardless of phase
			tracker.SetTemperature(sens.ReadTemperature())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				snap := tracker.Snapshot()
				log.Printf("heartbeat: uptime=%v state=%s cycles=%d",
					t.Sub(startTime).Truncate(time.Second), snap.State, snap.Counts.Cycles)

				hbEvent := mqtt.SystemEvent{
					Timestamp:  t,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// loopSink feeds controller notifications into the status tracker and MQTT.
// The tracker sees every notification; MQTT only sees actual changes, so the
// repeated per-tick ERROR notification does not flood the broker.
type loopSink struct {
	tracker   *status.Tracker
	publisher mqtt.Publisher
	now       time.Time

	hasLast     bool
	lastState   washer.State
	lastProgram int
}

func (s *loopSink) NotifyState(state washer.State, program int) {
	s.tracker.SetState(state, program)

	if s.hasLast && state == s.lastState && program == s.lastProgram {
		return
	}
	s.hasLast = true
	s.lastState = state
	s.lastProgram = program

	log.Printf("state: %s (program %d)", state, program)
	event := mqtt.WasherEvent{
		Timestamp: s.now,
		Event:     mqtt.EventStateChange,
		State:     state,
		Program:   program,
	}
	if err := s.publisher.Publish(event); err != nil {
		log.Printf("publish error: %v", err)
		// Don't crash on publish failure
	}
}

func (s *loopSink) NotifyProgram(program int) {
	s.tracker.SetProgram(program)
	s.lastProgram = program

	log.Printf("program: %d", program)
	event := mqtt.WasherEvent{
		Timestamp: s.now,
		Event:     mqtt.EventProgramSelect,
		State:     washer.StateIdle,
		Program:   program,
	}
	if err := s.publisher.Publish(event); err != nil {
		log.Printf("publish error: %v", err)
	}
}

// loopOutputs forwards output commands to the GPIO driver and mirrors them
// into the status tracker. Driver errors are logged, never propagated — the
// controller treats outputs as fire-and-forget.
type loopOutputs struct {
	driver  gpio.Driver
	tracker *status.Tracker

	hot, cold, fwd, rev bool
}

func (o *loopOutputs) SetValves(hot, cold bool) {
	o.hot, o.cold = hot, cold
	o.tracker.SetOutputs(o.hot, o.cold, o.fwd, o.rev)
	if err := o.driver.SetValves(hot, cold); err != nil {
		log.Printf("set valves: %v", err)
	}
}

func (o *loopOutputs) SetMotor(forward, reverse bool) {
	o.fwd, o.rev = forward, reverse
	o.tracker.SetOutputs(o.hot, o.cold, o.fwd, o.rev)
	if err := o.driver.SetMotor(forward, reverse); err != nil {
		log.Printf("set motor: %v", err)
	}
}
