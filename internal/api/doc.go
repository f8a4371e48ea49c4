// Package api 定義 HTTP 路由與對應的處理器。
//
// 它負責把 HTTP 請求轉換為 service 層的調用，
// 並把結果（或分類後的領域錯誤）轉換回 JSON 響應。
package api
