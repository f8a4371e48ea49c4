// Package middleware 提供 HTTP 請求處理的中間件。
//
// 目前包含 JWT 身份驗證與結構化請求日誌，
// 處理跨多個路由的共同邏輯。
package middleware
