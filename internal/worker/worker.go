// Package worker provides the NATS worker that processes synthesis jobs.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/glados-tts/internal/core"
)

const handleMessageTimeout = 60 * time.Second

// Static errors.
var (
	// ErrUnsupportedVoice indicates the requested voice is not available.
	ErrUnsupportedVoice = errors.New("unsupported voice")
	// ErrTemperatureRange indicates a negative temperature.
	ErrTemperatureRange = errors.New("temperature must be >= 0.0")
	// ErrTopPRange indicates a top_p outside [0.0, 1.0].
	ErrTopPRange = errors.New("top_p must be between 0.0 and 1.0")
)

// allowedVoices lists the speaker models this deployment serves. The
// empty string selects the default voice.
var allowedVoices = map[string]struct{}{
	"":       {},
	"glados": {},
}

// Worker listens for synthesis jobs on a NATS subject, runs the
// pipeline, and publishes result events.
type Worker struct {
	natsConnection *nats.Conn
	subject        string
	textStore      core.ObjectStore
	audioStore     core.ObjectStore
	speaker        core.Speaker
	log            *logger.Logger
}

// New creates a worker bound to a subject and its storage buckets.
func New(
	natsConnection *nats.Conn,
	subject string,
	textStore core.ObjectStore,
	audioStore core.ObjectStore,
	speaker core.Speaker,
	log *logger.Logger,
) *Worker {
	return &Worker{
		natsConnection: natsConnection,
		subject:        subject,
		textStore:      textStore,
		audioStore:     audioStore,
		speaker:        speaker,
		log:            log,
	}
}

// Run subscribes and processes jobs until the context is canceled, then
// drains the subscription.
func (w *Worker) Run(ctx context.Context) error {
	sub, err := w.natsConnection.Subscribe(w.subject, w.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *Worker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	var event events.TextProcessedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		w.log.Error("Failed to unmarshal event: %v", err)

		return
	}

	audioKey, processErr := w.processJob(ctx, &event)
	if processErr != nil {
		w.log.Error(
			"Failed to process synthesis job for workflow %s: %v",
			event.Header.WorkflowID, processErr,
		)

		return
	}

	replyEvent := &events.AudioChunkCreatedEvent{
		Header:     event.Header,
		AudioKey:   audioKey,
		PageNumber: event.PageNumber,
		TotalPages: event.TotalPages,
	}

	err = w.publishReply(msg, replyEvent)
	if err != nil {
		w.log.Error(
			"Failed to publish reply event for workflow %s: %v",
			event.Header.WorkflowID, err,
		)
	}
}

// processJob downloads the job text, synthesizes it, uploads the audio,
// and removes the consumed text object. The text object is only deleted
// after the audio upload succeeds, so a failed job can be retried.
func (w *Worker) processJob(
	ctx context.Context,
	event *events.TextProcessedEvent,
) (string, error) {
	validationErr := validateJob(event)
	if validationErr != nil {
		return "", validationErr
	}

	textData, err := w.textStore.Download(ctx, event.TextKey)
	if err != nil {
		return "", fmt.Errorf(
			"failed to download text data for key '%s': %w", event.TextKey, err,
		)
	}

	wavData, err := w.speaker.Speak(ctx, string(textData), jobConfig(w.speaker, event))
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	audioKey := uuid.NewString() + ".wav"

	err = w.audioStore.Upload(ctx, audioKey, wavData)
	if err != nil {
		return "", fmt.Errorf(
			"failed to upload audio data for key '%s': %w", audioKey, err,
		)
	}

	deleteErr := w.textStore.Delete(ctx, event.TextKey)
	if deleteErr != nil {
		// The audio is already stored; losing the cleanup is not fatal.
		w.log.Warn(
			"Failed to delete consumed text object '%s': %v",
			event.TextKey, deleteErr,
		)
	}

	return audioKey, nil
}

func (w *Worker) publishReply(msg *nats.Msg, replyEvent *events.AudioChunkCreatedEvent) error {
	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		return fmt.Errorf("failed to marshal reply event: %w", err)
	}

	err = msg.Respond(replyData)
	if err != nil {
		return fmt.Errorf("failed to publish reply event: %w", err)
	}

	return nil
}

// jobConfig derives the synthesis parameters for one job: the event's
// sampling values replace the service defaults, and an empty voice keeps
// the default voice.
func jobConfig(speaker core.Speaker, event *events.TextProcessedEvent) core.SynthesisConfig {
	cfg := speaker.Defaults()

	if event.Voice != "" {
		cfg.Voice = event.Voice
	}

	cfg.Temperature = event.Temperature
	cfg.TopP = event.TopP

	return cfg
}

// validateJob checks the per-request synthesis parameters.
func validateJob(event *events.TextProcessedEvent) error {
	_, voiceAllowed := allowedVoices[event.Voice]
	if !voiceAllowed {
		return fmt.Errorf("%w: '%s'", ErrUnsupportedVoice, event.Voice)
	}

	if event.Temperature < 0.0 {
		return fmt.Errorf("%w: got %f", ErrTemperatureRange, event.Temperature)
	}

	if event.TopP < 0.0 || event.TopP > 1.0 {
		return fmt.Errorf("%w: got %f", ErrTopPRange, event.TopP)
	}

	return nil
}
