package memory

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func BenchmarkMemoryCache_GetAudio(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()
	audio := make([]byte, 32*1024)

	for i := 0; i < 200; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("tts:%d", i), audio, time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, fmt.Sprintf("tts:%d", i%200))
	}
}

func BenchmarkMemoryCache_SetAudio(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()
	audio := make([]byte, 32*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("tts:%d", i), audio, time.Hour)
	}
}
