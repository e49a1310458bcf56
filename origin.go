package gomem

import "runtime"

// Origin identifies the call site of an allocation request - file,
// function and line. Origins are supplied by the immediate caller and
// consulted only to report a failed allocation; the tracking layer has
// no other way to know where a request came from.
type Origin struct {
	File string
	Func string
	Line int64
}

// Here capture the caller's origin. Pass the result along with each
// Malloc, Calloc or Realloc call so failures are reported against the
// call site.
func Here() Origin {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return Origin{File: "??", Func: "??"}
	}
	fn := "??"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = f.Name()
	}
	return Origin{File: file, Func: fn, Line: int64(line)}
}
