package atomicfile

import (
	"os"
	"syscall"
)

// Lock is an flock(2)-based file lock, for serializing config writes across
// processes on the same host (the in-process mutex in configstore and
// tunnel already serializes within this process).
type Lock struct {
	f *os.File
}

// AcquireLock opens (creating if needed) lockPath and blocks until it holds
// an exclusive flock on it.
func AcquireLock(lockPath string) (*Lock, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	return l.f.Close()
}
