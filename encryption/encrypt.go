package encryption

import (
	"context"
	"fmt"

	cgoCrypto "github.com/alwitt/cgoutils/crypto"
	"github.com/alwitt/scribe/db"
	"github.com/alwitt/scribe/models"
)

// secureBuffer a secure C memory buffer
type secureBuffer interface {
	GetSlice() ([]byte, error)
}

// fillSecureBuffer copy bytes into a secure C buffer which must be exactly filled
func fillSecureBuffer(buffer secureBuffer, src []byte, expectedLen int) error {
	core, err := buffer.GetSlice()
	if err != nil {
		return fmt.Errorf("failed to access secure buffer core [%w]", err)
	}
	if copied := copy(core, src); copied != expectedLen {
		return fmt.Errorf("failed to fill secure buffer %d =/= %d", copied, expectedLen)
	}
	return nil
}

// setupAEAD prepare AEAD. A random nonce is generated if none is given.
func (e *cryptoEngine) setupAEAD(
	ctx context.Context, key []byte, nonce []byte,
) (cgoCrypto.AEAD, error) {
	aead, err := e.crypto.GetAEAD(ctx, cgoCrypto.AEADTypeXChaCha20Poly1305)
	if err != nil {
		return nil, fmt.Errorf("unable to define AEAD client [%w]", err)
	}

	keyBuffer, err := e.crypto.AllocateSecureCSlice(aead.ExpectedKeyLen())
	if err != nil {
		return nil, fmt.Errorf("failed to init AEAD key buffer [%w]", err)
	}
	if err := fillSecureBuffer(keyBuffer, key, aead.ExpectedKeyLen()); err != nil {
		return nil, fmt.Errorf("failed to prepare AEAD key [%w]", err)
	}
	if err := aead.SetKey(keyBuffer); err != nil {
		return nil, fmt.Errorf("failed to install AEAD key [%w]", err)
	}

	if len(nonce) > 0 {
		nonceBuffer, err := e.crypto.AllocateSecureCSlice(aead.ExpectedNonceLen())
		if err != nil {
			return nil, fmt.Errorf("failed to init AEAD nonce buffer [%w]", err)
		}
		if err := fillSecureBuffer(nonceBuffer, nonce, aead.ExpectedNonceLen()); err != nil {
			return nil, fmt.Errorf("failed to prepare AEAD nonce [%w]", err)
		}
		if err := aead.SetNonce(nonceBuffer); err != nil {
			return nil, fmt.Errorf("failed to install AEAD nonce [%w]", err)
		}
	} else {
		nonceBuffer, err := e.crypto.GetRandomBuf(ctx, aead.ExpectedNonceLen())
		if err != nil {
			return nil, fmt.Errorf("failed to init AEAD nonce [%w]", err)
		}
		if err := aead.SetNonce(nonceBuffer); err != nil {
			return nil, fmt.Errorf("failed to install AEAD nonce [%w]", err)
		}
	}

	return aead, nil
}

// usableKey fetch a key, and verify it is able to seal or open data
func (e *cryptoEngine) usableKey(
	ctx context.Context, keyID string, activeDBClient db.Database,
) (encKeyCacheEntry, error) {
	keyEntry, err := e.getEncryptionKey(ctx, keyID, activeDBClient)
	if err != nil {
		return encKeyCacheEntry{}, fmt.Errorf("failed to get encryption key %s [%w]", keyID, err)
	}
	if len(keyEntry.plainTextKey) == 0 || keyEntry.State != models.EncryptionKeyStateActive {
		return encKeyCacheEntry{}, fmt.Errorf(
			"encryption key %s is not active or not decrypted", keyID,
		)
	}
	return keyEntry, nil
}

/*
EncryptData encrypt plain text

	@param ctx context.Context - execution context
	@param keyID string - the encryption key ID
	@param plainText []byte - the plain text to encrypt
	@param activeDBClient Database - existing database transaction
	@return key entry for the encryption, and the cipher text
*/
func (e *cryptoEngine) EncryptData(
	ctx context.Context, keyID string, plainText []byte, activeDBClient db.Database,
) (models.EncryptionKey, EncryptedData, error) {
	keyEntry, err := e.usableKey(ctx, keyID, activeDBClient)
	if err != nil {
		return models.EncryptionKey{}, EncryptedData{}, err
	}

	aead, err := e.setupAEAD(ctx, keyEntry.plainTextKey, nil)
	if err != nil {
		return models.EncryptionKey{}, EncryptedData{}, fmt.Errorf(
			"failed to setup AEAD client [%w]", err,
		)
	}

	// The nonce lives in secure memory; keep a plain copy to store with the cipher text
	nonce, err := aead.Nonce().GetSlice()
	if err != nil {
		return models.EncryptionKey{}, EncryptedData{}, fmt.Errorf("failed to get nonce [%w]", err)
	}
	nonceCopy := make([]byte, aead.ExpectedNonceLen())
	if copied := copy(nonceCopy, nonce); copied != aead.ExpectedNonceLen() {
		return models.EncryptionKey{}, EncryptedData{}, fmt.Errorf(
			"failed to copy nonce %d =/= %d", copied, aead.ExpectedNonceLen(),
		)
	}

	cipherText := make([]byte, aead.ExpectedCipherLen(int64(len(plainText))))
	if err := aead.Seal(ctx, 0, plainText, nil, cipherText); err != nil {
		return models.EncryptionKey{}, EncryptedData{}, fmt.Errorf(
			"failed to encrypt plain text [%w]", err,
		)
	}

	return keyEntry.EncryptionKey, EncryptedData{CipherText: cipherText, Nonce: nonceCopy}, nil
}

/*
DecryptData decrypt cipher text

	@param ctx context.Context - execution context
	@param keyID string - the encryption key ID
	@param encrypted EncryptedData - the cipher text to decrypt
	@param activeDBClient Database - existing database transaction
	@return key entry for the encryption, and the plain text
*/
func (e *cryptoEngine) DecryptData(
	ctx context.Context, keyID string, encrypted EncryptedData, activeDBClient db.Database,
) (models.EncryptionKey, []byte, error) {
	keyEntry, err := e.usableKey(ctx, keyID, activeDBClient)
	if err != nil {
		return models.EncryptionKey{}, nil, err
	}

	aead, err := e.setupAEAD(ctx, keyEntry.plainTextKey, encrypted.Nonce)
	if err != nil {
		return models.EncryptionKey{}, nil, fmt.Errorf("failed to setup AEAD client [%w]", err)
	}

	plainText := make([]byte, aead.ExpectedPlainTextLen(int64(len(encrypted.CipherText))))
	if err := aead.Unseal(ctx, 0, encrypted.CipherText, nil, plainText); err != nil {
		return models.EncryptionKey{}, nil, fmt.Errorf("failed to decrypt cipher text [%w]", err)
	}

	return keyEntry.EncryptionKey, plainText, nil
}
