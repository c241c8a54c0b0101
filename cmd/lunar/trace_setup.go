package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"lunar/internal/trace"
)

type traceFlags struct {
	output    string
	level     trace.Level
	mode      trace.StorageMode
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var tf traceFlags

	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return tf, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return tf, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if tf.output, err = flags.GetString("trace"); err != nil {
		return tf, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if tf.ringSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return tf, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	if tf.heartbeat, err = flags.GetDuration("trace-heartbeat"); err != nil {
		return tf, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	if tf.level, err = trace.ParseLevel(levelStr); err != nil {
		return tf, err
	}
	// --trace без --trace-level
	if tf.level == trace.LevelOff && tf.output != "" {
		tf.level = trace.LevelPhase
	}
	if tf.mode, err = trace.ParseMode(modeStr); err != nil {
		return tf, err
	}
	return tf, nil
}

// setupTracing installs the tracer into the command context. The returned
// stop function ends the heartbeat and closes the tracer; when the command
// failed and the tracer keeps a ring alongside a stream, the ring is dumped
// to stderr first.
func setupTracing(cmd *cobra.Command) (func(runErr error), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	if tf.level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(error) {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      tf.level,
		Mode:       tf.mode,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx, span := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, cmd.CommandPath())
	cmd.SetContext(ctx)
	stopHeartbeat := trace.StartHeartbeat(ctx, tracer, tf.heartbeat)
	stderr := cmd.ErrOrStderr()

	return func(runErr error) {
		stopHeartbeat()
		if runErr != nil {
			span.End(runErr.Error())
			if tf.mode == trace.ModeBoth {
				dumpRing(stderr, tracer)
			}
		} else {
			span.End("")
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close error: %v\n", err)
		}
	}, nil
}

func dumpRing(w io.Writer, tracer trace.Tracer) {
	ring := trace.RingOf(tracer)
	if ring == nil {
		return
	}
	fmt.Fprintf(w, "--- last trace events (%d dropped) ---\n", ring.Dropped())
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
