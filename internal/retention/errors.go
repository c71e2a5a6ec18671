package retention

import "errors"

var (
	ErrExpirePassFailed = errors.New("retention: expire pass failed")
	ErrDeletePassFailed = errors.New("retention: delete pass failed")
)
