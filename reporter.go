package gomem

import "syscall"

import "github.com/bnclabs/golog"

// logreporter is the default api.Reporter{}, rendering failed
// allocation calls onto the error log as
// `error (<func> @ <file>:<line> <errno>) - <message>`.
type logreporter struct{}

func (r *logreporter) Allocfail(file, fn string, line int64, err error) {
	if errno, ok := err.(syscall.Errno); ok {
		fmsg := "error (%v @ %v:%v %v) - %v\n"
		log.Errorf(fmsg, fn, file, line, int(errno), errno.Error())
		return
	}
	log.Errorf("error (%v @ %v:%v) - %v\n", fn, file, line, err)
}
