package gen

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for generator events.
var (
	SignalDeriveStart     = capitan.NewSignal("many.gen.derive.start", "Derivation beginning")
	SignalDeriveComplete  = capitan.NewSignal("many.gen.derive.complete", "Derivation finished")
	SignalViewSynthesized = capitan.NewSignal("many.gen.view.synthesized", "Marker view synthesized")
	SignalFileGenerated   = capitan.NewSignal("many.gen.file.generated", "Generated file assembled")
)

// Keys for typed event data.
var (
	KeyTypeName  = capitan.NewStringKey("type_name")
	KeyDirection = capitan.NewStringKey("direction")
	KeyMarker    = capitan.NewStringKey("marker")
	KeyViewCount = capitan.NewIntKey("view_count")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
	KeyFile      = capitan.NewStringKey("file")
)

func emitDeriveStart(ctx context.Context, typeName string, dir Direction) {
	capitan.Emit(ctx, SignalDeriveStart,
		KeyTypeName.Field(typeName),
		KeyDirection.Field(dir.String()),
	)
}

func emitDeriveComplete(ctx context.Context, typeName string, dir Direction, views int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDirection.Field(dir.String()),
		KeyViewCount.Field(views),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDeriveComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDeriveComplete, fields...)
	}
}

func emitViewSynthesized(ctx context.Context, typeName, marker string) {
	capitan.Emit(ctx, SignalViewSynthesized,
		KeyTypeName.Field(typeName),
		KeyMarker.Field(marker),
	)
}

func emitFileGenerated(ctx context.Context, file string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFile.Field(file),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFileGenerated, fields...)
	} else {
		capitan.Emit(ctx, SignalFileGenerated, fields...)
	}
}
