package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT token'ın içindeki veriler (payload).
//
// JWT (JSON Web Token) nedir?
// Kullanıcı kimliğini doğrulamak için kullanılan, imzalanmış bir token.
// 3 parçadan oluşur: header.payload.signature
//
// Payload'da SADECE subject id (user_id) ve registered claim'ler
// (exp, iat, iss, jti) bulunur. Password hash'i veya herhangi bir secret
// ASLA claim'lere girmez — JWT payload'ı imzalıdır ama ŞİFRELİ DEĞİLDİR,
// base64 decode eden herkes okuyabilir.
//
// Hem access hem refresh token aynı claim şeklini kullanır; fark imza
// secret'ı ve expiry süresidir (bkz. services.TokenIssuer).
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenPair, sign-up/sign-in/refresh sonrası üretilen token çifti.
// Access token kısa ömürlü (dakikalar), refresh token uzun ömürlü (günler).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
