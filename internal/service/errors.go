package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	QuotaExceeded       = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrUsernameInvalid         = errors.New("用户名不合法")
	ErrVideoURLInvalid         = errors.New("无效的视频链接")
	ErrVideoNotFound           = errors.New("视频不存在")
	ErrProfileNotFound         = errors.New("账号不存在")
	ErrProfilePrivate          = errors.New("账号为私密账号")
	ErrNotVideoPost            = errors.New("该帖子不是视频")
	ErrLoginRequired           = errors.New("上游要求登录")
	ErrQuotaExceeded           = errors.New("本月下载配额已用尽")
	ErrActionDuplicate         = errors.New("重复操作")
	ErrScrapeStatusNotFound    = errors.New("抓取任务不存在")
	ErrFileNotExist            = errors.New("文件不存在")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrMissingLoginCredentials: Unauthorized,
	ErrUsernameInvalid:         BadRequest,
	ErrVideoURLInvalid:         BadRequest,
	ErrVideoNotFound:           NotFound,
	ErrProfileNotFound:         NotFound,
	ErrProfilePrivate:          BadRequest,
	ErrNotVideoPost:            BadRequest,
	ErrLoginRequired:           Unauthorized,
	ErrQuotaExceeded:           QuotaExceeded,
	ErrActionDuplicate:         BadRequest,
	ErrScrapeStatusNotFound:    NotFound,
	ErrFileNotExist:            NotFound,
	UnExpectedError:            InternalServerError,
}
