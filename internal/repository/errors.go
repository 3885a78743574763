package repository

import "errors"

// ErrVersionConflict 乐观锁版本不匹配
var ErrVersionConflict = errors.New("version conflict")
