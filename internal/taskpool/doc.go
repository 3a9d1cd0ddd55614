// Package taskpool 为每个请求运行一个独立的后台任务
//
// Submit 立即返回，不等待任务完成。MaxInFlight 为 0 时不限制并发，
// 大于 0 时在达到上限后拒绝新任务并返回 ErrSaturated，由调用方决定如何处理。
//
// 已提交的任务不会被取消，Close 只停止接收新任务并等待在途任务结束。
package taskpool
