package registry

import (
	"strconv"
	"testing"
)

func benchRegistry(n int) *DefaultRegistry[string, *stub] {
	reg := New[string, *stub]()
	for i := range n {
		reg.Add(prefixed(strconv.Itoa(i), "/"+strconv.Itoa(i)+"/"))
	}
	return reg
}

func BenchmarkFind_SingleMatch(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			reg := benchRegistry(n)
			req := "/" + strconv.Itoa(n-1) + "/"
			b.ResetTimer()
			for range b.N {
				if _, found, _ := reg.Find(req); !found {
					b.Fatal("expected a match")
				}
			}
		})
	}
}

func BenchmarkFind_NoMatch(b *testing.B) {
	reg := benchRegistry(100)
	b.ResetTimer()
	for range b.N {
		if _, found, _ := reg.Find("/missing/"); found {
			b.Fatal("unexpected match")
		}
	}
}

func BenchmarkFind_Consume(b *testing.B) {
	for range b.N {
		b.StopTimer()
		reg := New[string, *stub]()
		for i := range 50 {
			reg.Add(always(strconv.Itoa(i)))
		}
		b.StartTimer()
		for reg.Len() > 1 {
			reg.Find("/")
		}
	}
}

func BenchmarkReplace(b *testing.B) {
	reg := benchRegistry(1000)
	target := never("999")
	b.ResetTimer()
	for range b.N {
		if err := reg.Replace(target); err != nil {
			b.Fatal(err)
		}
	}
}
