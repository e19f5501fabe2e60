package json_test

import (
	"strconv"
	"strings"
	"testing"

	godeko "github.com/reoring/godeko"
	"github.com/reoring/godeko/dsl"
	"github.com/reoring/godeko/json"
)

type benchUser struct {
	ID   string
	Name string
	Age  uint8
}

func benchUserDecoder() godeko.Decoder[benchUser] {
	return dsl.Object[benchUser]().
		Field("id", dsl.Bind(godeko.String(), func(u *benchUser, v string) { u.ID = v })).
		Field("name", dsl.Bind(godeko.String(), func(u *benchUser, v string) { u.Name = v })).
		Field("age", dsl.Bind(godeko.Int[uint8](), func(u *benchUser, v uint8) { u.Age = v })).
		Require("id").
		Build()
}

// generateUserArray builds a JSON array of n user objects.
func generateUserArray(n int) string {
	var b strings.Builder
	b.Grow(n * 48)
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":"u_`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","name":"n`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","age":`)
		b.WriteString(strconv.Itoa(i % 100))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

func BenchmarkParseSmallObject(b *testing.B) {
	const src = `{"id":"u_1","name":"alice","age":30}`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		root := json.Parse(src, json.Options{})
		if _, ok := root.Value(); !ok {
			b.Fatal("parse failed")
		}
	}
}

func BenchmarkDeserializeAny(b *testing.B) {
	src := generateUserArray(100)
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := json.Deserialize(src, godeko.Any(), json.Options{})
		if _, ok := r.Value(); !ok {
			b.Fatal("deserialize failed")
		}
	}
}

func BenchmarkDeserializeTyped(b *testing.B) {
	src := generateUserArray(100)
	dec := godeko.Slice(benchUserDecoder())
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := json.Deserialize(src, dec, json.Options{})
		if v, ok := r.Value(); !ok || len(v) != 100 {
			b.Fatal("deserialize failed")
		}
	}
}

func BenchmarkDeserializeWithDuplicateCheck(b *testing.B) {
	src := generateUserArray(100)
	dec := godeko.Slice(benchUserDecoder())
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := json.Deserialize(src, dec, json.Options{OnDuplicateKey: godeko.Warn})
		if _, ok := r.Value(); !ok {
			b.Fatal("deserialize failed")
		}
	}
}
